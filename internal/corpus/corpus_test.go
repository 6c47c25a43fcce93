package corpus_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthmate/captionrag/internal/corpus"
	"github.com/wealthmate/captionrag/internal/domain"
)

func TestCorpusRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playlist_captions.json")

	records := []domain.CaptionRecord{
		{
			ID:      "3f8a2c1e-0b6d-4a57-9a7e-2f1c9d8e4b21",
			VideoID: "dQw4w9WgXcQ",
			URL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Title:   "Investing Basics",
			Text:    "Start early and invest regularly.",
		},
		{
			ID:    "7d2e9f4a-6c1b-48d3-b5a0-e8f7c6d5a4b3",
			URL:   "https://www.youtube.com/watch?v=abc123",
			Title: "Index Funds Explained",
			Text:  "Index funds track a market index.",
		},
	}

	require.NoError(t, corpus.Save(path, records))

	loaded, err := corpus.Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	for i := range records {
		assert.Equal(t, records[i].ID, loaded[i].ID)
		assert.Equal(t, records[i].URL, loaded[i].URL)
		assert.Equal(t, records[i].Title, loaded[i].Title)
		assert.Equal(t, records[i].Text, loaded[i].Text)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := corpus.Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestExtractPlaintext(t *testing.T) {
	payload := `{
		"events": [
			{"segs": [{"utf8": "dollar-cost "}, {"utf8": "averaging"}]},
			{"segs": [{"utf8": "\n  means investing\t"}, {"utf8": "regularly"}]},
			{}
		]
	}`

	got := corpus.ExtractPlaintext([]byte(payload))
	assert.Equal(t, "dollar-cost averaging means investing regularly", got)
}

func TestExtractPlaintext_NotJSON(t *testing.T) {
	// an srt/vtt payload is not an error, just not usable
	assert.Equal(t, "", corpus.ExtractPlaintext([]byte("1\n00:00:01,000 --> 00:00:02,000\nhello\n")))
}

func TestExtractPlaintext_EmptyEvents(t *testing.T) {
	assert.Equal(t, "", corpus.ExtractPlaintext([]byte(`{"events": []}`)))
}
