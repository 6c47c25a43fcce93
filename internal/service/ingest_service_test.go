package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/wealthmate/captionrag/internal/domain"
	"github.com/wealthmate/captionrag/internal/service"
)

type fakeIngestor struct {
	failFor map[string]bool
	seen    []string
}

func (f *fakeIngestor) IngestCaption(_ context.Context, record domain.CaptionRecord) (int, error) {
	if f.failFor[record.ID] {
		return 0, errors.New("embedding backend down")
	}
	f.seen = append(f.seen, record.ID)
	return 3, nil
}

func TestIngestCorpus_SkipsEmptyAndFailedRecords(t *testing.T) {
	ingestor := &fakeIngestor{failFor: map[string]bool{"bad": true}}
	svc := service.NewIngestService(ingestor, zap.NewNop())

	records := []domain.CaptionRecord{
		{ID: "ok1", Title: "A", URL: "https://v/a", Text: "captions here"},
		{ID: "empty", Title: "B", URL: "https://v/b", Text: ""},
		{ID: "bad", Title: "C", URL: "https://v/c", Text: "more captions"},
		{ID: "ok2", Title: "D", URL: "https://v/d", Text: "and more"},
	}

	ingested, skipped := svc.IngestCorpus(context.Background(), records)

	assert.Equal(t, 2, ingested)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, []string{"ok1", "ok2"}, ingestor.seen)
}
