// Package playlist wraps the external yt-dlp binary to turn a video
// playlist into caption records. yt-dlp does the heavy lifting; this
// package only drives it and extracts plain text from the subtitle
// tracks it reports.
package playlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wealthmate/captionrag/internal/corpus"
	"github.com/wealthmate/captionrag/internal/domain"
)

// Extractor scrapes playlist metadata and caption tracks.
type Extractor struct {
	binary       string
	thumbnailDir string
	client       *http.Client
	logger       *zap.Logger
}

// NewExtractor creates an Extractor. binary defaults to "yt-dlp" when
// empty; thumbnailDir may be empty to skip thumbnail downloads.
func NewExtractor(binary, thumbnailDir string, logger *zap.Logger) *Extractor {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &Extractor{
		binary:       binary,
		thumbnailDir: thumbnailDir,
		client:       &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
	}
}

// yt-dlp -J output, reduced to the fields consumed here.
type playlistDump struct {
	Entries []*playlistEntry `json:"entries"`
}

type playlistEntry struct {
	ID                string                     `json:"id"`
	Title             string                     `json:"title"`
	WebpageURL        string                     `json:"webpage_url"`
	Thumbnail         string                     `json:"thumbnail"`
	Subtitles         map[string][]captionTrack `json:"subtitles"`
	AutomaticCaptions map[string][]captionTrack `json:"automatic_captions"`
}

type captionTrack struct {
	URL string `json:"url"`
	Ext string `json:"ext"`
}

// Scrape runs yt-dlp against the playlist URL and returns one caption
// record per entry with non-empty caption text. Per-entry failures are
// logged and skipped.
func (e *Extractor) Scrape(ctx context.Context, playlistURL string) ([]domain.CaptionRecord, error) {
	cmd := exec.CommandContext(ctx, e.binary,
		"-J",
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--ignore-errors",
		playlistURL,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp failed: %w (stderr: %s)", err, stderr.String())
	}

	var dump playlistDump
	if err := json.Unmarshal(stdout.Bytes(), &dump); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	var records []domain.CaptionRecord
	for _, entry := range dump.Entries {
		if entry == nil {
			continue
		}

		text, err := e.captionText(ctx, entry)
		if err != nil {
			e.logger.Warn("skipping entry, caption fetch failed",
				zap.String("video_id", entry.ID),
				zap.String("title", entry.Title),
				zap.Error(err),
			)
			continue
		}
		if text == "" {
			e.logger.Warn("skipping entry, no captions",
				zap.String("video_id", entry.ID),
				zap.String("title", entry.Title),
			)
			continue
		}

		record := domain.CaptionRecord{
			ID:      uuid.New().String(),
			VideoID: entry.ID,
			URL:     entry.WebpageURL,
			Title:   entry.Title,
			Text:    text,
		}

		if e.thumbnailDir != "" && entry.Thumbnail != "" {
			if path, err := e.downloadThumbnail(ctx, entry.ID, entry.Thumbnail); err != nil {
				e.logger.Warn("thumbnail download failed",
					zap.String("video_id", entry.ID),
					zap.Error(err),
				)
			} else {
				record.Thumbnail = path
			}
		}

		records = append(records, record)
	}

	return records, nil
}

// captionText fetches every English track for the entry and joins the
// extracted plain text. Manual subtitles win over automatic captions.
func (e *Extractor) captionText(ctx context.Context, entry *playlistEntry) (string, error) {
	subs := entry.Subtitles
	if len(subs) == 0 {
		subs = entry.AutomaticCaptions
	}

	tracks := subs["en"]
	if len(tracks) == 0 {
		tracks = subs["en-US"]
	}

	var text string
	for _, track := range tracks {
		if track.URL == "" {
			continue
		}
		raw, err := e.fetch(ctx, track.URL)
		if err != nil {
			return "", err
		}
		text += corpus.ExtractPlaintext(raw)
	}

	return text, nil
}

func (e *Extractor) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("caption track fetch returned %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (e *Extractor) downloadThumbnail(ctx context.Context, videoID, url string) (string, error) {
	if err := os.MkdirAll(e.thumbnailDir, 0755); err != nil {
		return "", err
	}

	raw, err := e.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(url)
	if i := strings.IndexByte(ext, '?'); i >= 0 {
		ext = ext[:i]
	}
	if ext == "" {
		ext = ".jpg"
	}

	path := filepath.Join(e.thumbnailDir, videoID+ext)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", err
	}
	return path, nil
}
