package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/wealthmate/captionrag/internal/config"
	"github.com/wealthmate/captionrag/internal/corpus"
	"github.com/wealthmate/captionrag/internal/playlist"
	"github.com/wealthmate/captionrag/internal/rag"
	"github.com/wealthmate/captionrag/internal/service"
)

var (
	configPath  = flag.String("config", "", "Path to config file")
	playlistURL = flag.String("playlist", "", "Playlist URL to scrape")
	ytdlpBinary = flag.String("ytdlp", "yt-dlp", "Path to the yt-dlp binary")
	skipScrape  = flag.Bool("skip-scrape", false, "Reuse the existing corpus file instead of scraping")
	skipEmbed   = flag.Bool("skip-embed", false, "Only build the corpus file, do not embed")
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

	ctx := context.Background()

	if !*skipScrape {
		if *playlistURL == "" {
			log.Fatal("-playlist is required unless -skip-scrape is set")
		}

		extractor := playlist.NewExtractor(*ytdlpBinary, cfg.Corpus.Thumbnails, logger)
		records, err := extractor.Scrape(ctx, *playlistURL)
		if err != nil {
			logger.Fatal("Failed to scrape playlist", zap.Error(err))
		}

		if err := corpus.Save(cfg.Corpus.Path, records); err != nil {
			logger.Fatal("Failed to write corpus file", zap.Error(err))
		}
		fmt.Printf("Done → %s (%d records)\n", cfg.Corpus.Path, len(records))
	}

	if *skipEmbed {
		return
	}

	records, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		logger.Fatal("Failed to load corpus file", zap.Error(err))
	}

	ragClient, err := rag.NewClient(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize RAG client", zap.Error(err))
	}
	defer ragClient.Close()

	ingestService := service.NewIngestService(ragClient, logger)
	ingested, skipped := ingestService.IngestCorpus(ctx, records)

	fmt.Printf("Embedded %d records into %q (%d skipped)\n", ingested, cfg.RAG.Collection, skipped)
}
