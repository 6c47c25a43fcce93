package domain

// CaptionRecord is one ingested video's caption text plus the metadata
// needed to cite it later. Records are created once at scrape time and
// never modified afterwards.
type CaptionRecord struct {
	ID        string `json:"id"`
	VideoID   string `json:"video_id,omitempty"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Chunk metadata keys attached to every embedded chunk so retrieval can
// recover the parent record.
const (
	MetadataKeyRecordID = "id"
	MetadataKeyTitle    = "title"
	MetadataKeyURL      = "url"
)
