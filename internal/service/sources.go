package service

import "github.com/wealthmate/captionrag/internal/domain"

// excerptLen caps citation excerpts.
const excerptLen = 300

// DedupeSources collapses passages sharing (title, url) into one
// citation each, keeping first-seen (best similarity) order, capped at
// max entries.
func DedupeSources(passages []domain.Passage, max int) []domain.Citation {
	type key struct {
		title string
		url   string
	}

	seen := make(map[key]struct{}, len(passages))
	citations := make([]domain.Citation, 0, max)

	for _, p := range passages {
		if len(citations) >= max {
			break
		}
		k := key{title: p.Title, url: p.URL}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}

		excerpt := p.Content
		if len(excerpt) > excerptLen {
			excerpt = excerpt[:excerptLen]
		}

		citations = append(citations, domain.Citation{
			Title:   p.Title,
			URL:     p.URL,
			ID:      p.RecordID,
			Excerpt: excerpt,
		})
	}

	return citations
}
