package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wealthmate/captionrag/internal/api"
	"github.com/wealthmate/captionrag/internal/config"
	"github.com/wealthmate/captionrag/internal/rag"
	"github.com/wealthmate/captionrag/internal/repository"
	"github.com/wealthmate/captionrag/internal/service"
	"github.com/wealthmate/captionrag/internal/tts"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Transcript database (audit log of every turn)
	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()
	transcriptRepo := repository.NewTranscriptRepository(db)

	// Vector store, embedder, and LLM
	ragClient, err := rag.NewClient(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize RAG client", zap.Error(err))
	}
	defer ragClient.Close()

	state := service.NewConversationState(cfg.RAG.HistoryWindow)
	rewriter := service.NewRewriter(cfg.Chat.Rewriter, ragClient)
	answerer := service.NewAnswerer(ragClient)

	chatService := service.NewChatService(
		ragClient,
		rewriter,
		answerer,
		state,
		transcriptRepo,
		logger,
		cfg.RAG.TopK,
		cfg.RAG.MaxSources,
	)

	speaker := tts.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.TTS.Model, cfg.TTS.Voice)

	router := api.SetupRouter(chatService, speaker, logger, api.RouterConfig{
		APIKey:       cfg.Admin.APIKey,
		AllowOrigins: []string{"*"},
	})

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // TTS streams can run long
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting CaptionRAG server",
			zap.String("address", cfg.Address()),
			zap.String("rewriter", cfg.Chat.Rewriter),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
