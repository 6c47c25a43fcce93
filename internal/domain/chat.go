package domain

// Conversation roles
const (
	RoleHuman     = "human"
	RoleAssistant = "assistant"
)

// Turn is a single message in the conversation history.
type Turn struct {
	Role    string `json:"role"` // human, assistant
	Content string `json:"content"`
}

// Passage is one retrieved chunk with its parent record's metadata.
// Passages exist only for the duration of a single query; their slice
// order is descending similarity.
type Passage struct {
	RecordID string  `json:"record_id"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
}

// Citation is a deduplicated source reference shown to the user.
type Citation struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	ID      string `json:"id,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
}

// Answer is the structured outcome of generation. Refused is decided
// once, when the answer is produced; downstream control flow (history
// persistence, source suppression) branches on the field rather than
// re-scanning the text.
type Answer struct {
	Text    string `json:"text"`
	Refused bool   `json:"refused"`
}

// ChatResult is what one turn of the pipeline returns to the caller.
type ChatResult struct {
	Answer  string     `json:"answer"`
	History []Turn     `json:"history"`
	Sources []Citation `json:"sources"`
}

// ChatRequest is the HTTP request body for a chat turn.
type ChatRequest struct {
	UserInput string `json:"user_input" binding:"required"`
}

// ChatResponse is the HTTP response body for a chat turn.
type ChatResponse struct {
	Result *ChatResult `json:"result"`
}

// TTSRequest is the HTTP request body for speech synthesis.
type TTSRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}
