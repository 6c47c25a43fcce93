package service

import (
	"strings"

	"github.com/wealthmate/captionrag/internal/domain"
)

const passageSeparator = "\n\n---\n"

// BuildContext joins passage bodies into the single text blob fed to
// the answer prompt, preserving similarity order. Empty input yields
// an empty string.
func BuildContext(passages []domain.Passage) string {
	if len(passages) == 0 {
		return ""
	}

	parts := make([]string, len(passages))
	for i, p := range passages {
		parts[i] = p.Content
	}
	return strings.Join(parts, passageSeparator)
}
