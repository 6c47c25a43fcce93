package corpus

import (
	"encoding/json"
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// json3 subtitle payload as served for auto-generated caption tracks.
type subtitlePayload struct {
	Events []subtitleEvent `json:"events"`
}

type subtitleEvent struct {
	Segs []subtitleSeg `json:"segs"`
}

type subtitleSeg struct {
	UTF8 string `json:"utf8"`
}

// ExtractPlaintext pulls the spoken text out of a json3 subtitle
// payload, collapsing whitespace runs to single spaces. A payload that
// is not JSON means the track has no usable captions; the result is an
// empty string, never an error.
func ExtractPlaintext(raw []byte) string {
	var payload subtitlePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}

	var sb strings.Builder
	for _, event := range payload.Events {
		for _, seg := range event.Segs {
			sb.WriteString(seg.UTF8)
		}
	}

	return strings.TrimSpace(whitespace.ReplaceAllString(sb.String(), " "))
}
