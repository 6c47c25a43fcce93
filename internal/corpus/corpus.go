// Package corpus handles the durable caption corpus file: the JSON
// handoff between playlist scraping and vector-store ingestion.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wealthmate/captionrag/internal/domain"
)

// Save writes records to path as an indented JSON array, creating the
// parent directory if needed.
func Save(path string, records []domain.CaptionRecord) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create corpus directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal corpus: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write corpus file: %w", err)
	}
	return nil
}

// Load reads a corpus file written by Save.
func Load(path string) ([]domain.CaptionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var records []domain.CaptionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}
	return records, nil
}
