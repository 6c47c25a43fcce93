package service

import (
	"sync"

	"github.com/wealthmate/captionrag/internal/domain"
)

// DefaultHistoryWindow is the number of retained exchanges (a human
// turn plus its assistant turn).
const DefaultHistoryWindow = 20

// ConversationState owns the ordered turn history for the single
// process-wide conversation. It is constructed explicitly at startup
// and lives for the life of the process. All methods are safe for
// concurrent use; turn-level serialization is the ChatService's job.
type ConversationState struct {
	mu     sync.Mutex
	turns  []domain.Turn
	window int // retained exchanges
}

// NewConversationState creates an empty history retaining at most
// window exchanges. window <= 0 falls back to DefaultHistoryWindow.
func NewConversationState(window int) *ConversationState {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	return &ConversationState{window: window}
}

// Snapshot returns a copy of the current turns in chronological order.
func (s *ConversationState) Snapshot() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Append records one completed exchange and trims the history to the
// newest window exchanges, dropping from the head.
func (s *ConversationState) Append(question, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns,
		domain.Turn{Role: domain.RoleHuman, Content: question},
		domain.Turn{Role: domain.RoleAssistant, Content: answer},
	)

	max := s.window * 2
	if len(s.turns) > max {
		s.turns = s.turns[len(s.turns)-max:]
	}
}

// Len returns the number of stored turns.
func (s *ConversationState) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}
