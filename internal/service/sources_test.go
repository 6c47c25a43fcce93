package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthmate/captionrag/internal/domain"
	"github.com/wealthmate/captionrag/internal/service"
)

func passage(title, url, content string, score float64) domain.Passage {
	return domain.Passage{Title: title, URL: url, Content: content, Score: score}
}

func TestDedupeSources_PreservesSimilarityOrder(t *testing.T) {
	passages := []domain.Passage{
		passage("A", "https://v/a", "p1", 0.95),
		passage("B", "https://v/b", "p2", 0.90),
		passage("A", "https://v/a", "p3", 0.85), // duplicate of p1
		passage("C", "https://v/c", "p4", 0.80),
	}

	citations := service.DedupeSources(passages, 4)

	require.Len(t, citations, 3)
	assert.Equal(t, "A", citations[0].Title)
	assert.Equal(t, "p1", citations[0].Excerpt)
	assert.Equal(t, "B", citations[1].Title)
	assert.Equal(t, "C", citations[2].Title)
}

func TestDedupeSources_CapsAtMax(t *testing.T) {
	var passages []domain.Passage
	for _, title := range []string{"A", "B", "C", "D", "E", "F"} {
		passages = append(passages, passage(title, "https://v/"+title, "text", 0.5))
	}

	citations := service.DedupeSources(passages, 4)
	require.Len(t, citations, 4)
	assert.Equal(t, "D", citations[3].Title)
}

func TestDedupeSources_Idempotent(t *testing.T) {
	passages := []domain.Passage{
		passage("A", "https://v/a", "p1", 0.95),
		passage("A", "https://v/a", "p2", 0.90),
		passage("B", "https://v/b", "p3", 0.85),
	}

	once := service.DedupeSources(passages, 4)

	// feeding the deduped set back through changes nothing
	var again []domain.Passage
	for _, c := range once {
		again = append(again, passage(c.Title, c.URL, c.Excerpt, 0))
	}
	twice := service.DedupeSources(again, 4)

	require.Equal(t, len(once), len(twice))
	for i := range once {
		assert.Equal(t, once[i].Title, twice[i].Title)
		assert.Equal(t, once[i].URL, twice[i].URL)
	}
}

func TestDedupeSources_Empty(t *testing.T) {
	assert.Empty(t, service.DedupeSources(nil, 4))
}

func TestDedupeSources_TruncatesExcerpt(t *testing.T) {
	long := strings.Repeat("x", 500)
	citations := service.DedupeSources([]domain.Passage{passage("A", "https://v/a", long, 0.9)}, 4)
	require.Len(t, citations, 1)
	assert.Len(t, citations[0].Excerpt, 300)
}
