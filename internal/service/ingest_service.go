package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/wealthmate/captionrag/internal/domain"
)

// CaptionIngestor chunks a caption record's text and embeds it into the
// vector store, returning the chunk count.
type CaptionIngestor interface {
	IngestCaption(ctx context.Context, record domain.CaptionRecord) (int, error)
}

// IngestService pushes a caption corpus into the vector store.
type IngestService struct {
	ingestor CaptionIngestor
	logger   *zap.Logger
}

// NewIngestService creates an ingest service.
func NewIngestService(ingestor CaptionIngestor, logger *zap.Logger) *IngestService {
	return &IngestService{ingestor: ingestor, logger: logger}
}

// IngestCorpus embeds every record with caption text. Per-record
// failures are logged and skipped; they never abort the run. Returns
// the number of records ingested and skipped.
func (s *IngestService) IngestCorpus(ctx context.Context, records []domain.CaptionRecord) (ingested, skipped int) {
	for _, record := range records {
		if record.Text == "" {
			s.logger.Warn("skipping record with empty caption text",
				zap.String("id", record.ID),
				zap.String("title", record.Title),
			)
			skipped++
			continue
		}

		chunks, err := s.ingestor.IngestCaption(ctx, record)
		if err != nil {
			s.logger.Warn("failed to ingest record",
				zap.String("id", record.ID),
				zap.String("title", record.Title),
				zap.Error(err),
			)
			skipped++
			continue
		}

		s.logger.Info("ingested record",
			zap.String("id", record.ID),
			zap.String("title", record.Title),
			zap.Int("chunks", chunks),
		)
		ingested++
	}

	return ingested, skipped
}
