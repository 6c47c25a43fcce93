package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/wealthmate/captionrag/internal/config"
	"github.com/wealthmate/captionrag/internal/rag"
	"github.com/wealthmate/captionrag/internal/repository"
	"github.com/wealthmate/captionrag/internal/service"
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

	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()
	transcriptRepo := repository.NewTranscriptRepository(db)

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

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-interrupt
		fmt.Println("\nGoodbye!")
		os.Exit(0)
	}()

	fmt.Println("CaptionRAG CLI. Type 'exit' or 'quit' to leave.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYour question> ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if lower := strings.ToLower(input); lower == "exit" || lower == "quit" {
			fmt.Println("Goodbye!")
			break
		}

		result, err := chatService.Chat(context.Background(), input)
		if err != nil {
			fmt.Printf("Error while getting answer: %v\n", err)
			continue
		}

		fmt.Println("\nAnswer:")
		fmt.Println(result.Answer)

		if len(result.Sources) > 0 {
			fmt.Println("\nSources:")
			for i, s := range result.Sources {
				fmt.Printf("  %d. %s - %s\n", i+1, s.Title, s.URL)
			}
		}
	}
}
