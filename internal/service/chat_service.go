package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wealthmate/captionrag/internal/domain"
	"github.com/wealthmate/captionrag/internal/repository"
)

// Retriever returns the top-k most similar passages for a query,
// ordered by descending similarity.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]domain.Passage, error)
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChatService runs one conversational turn through the five pipeline
// stages: rewrite, retrieve, format, answer, dedupe/update. A single
// mutex serializes turns so the read-rewrite-append cycle on the
// conversation state cannot interleave.
type ChatService struct {
	mu          sync.Mutex
	retriever   Retriever
	rewriter    Rewriter
	answerer    *Answerer
	state       *ConversationState
	transcripts *repository.TranscriptRepository // optional audit log
	logger      *zap.Logger
	topK        int
	maxSources  int
}

// NewChatService creates a chat service. transcripts may be nil.
func NewChatService(
	retriever Retriever,
	rewriter Rewriter,
	answerer *Answerer,
	state *ConversationState,
	transcripts *repository.TranscriptRepository,
	logger *zap.Logger,
	topK int,
	maxSources int,
) *ChatService {
	return &ChatService{
		retriever:   retriever,
		rewriter:    rewriter,
		answerer:    answerer,
		state:       state,
		transcripts: transcripts,
		logger:      logger,
		topK:        topK,
		maxSources:  maxSources,
	}
}

// Chat answers one user question. The conversation state is mutated
// only after the whole pipeline has succeeded; a failure at any stage
// leaves history untouched.
func (s *ChatService) Chat(ctx context.Context, userInput string) (*domain.ChatResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.state.Snapshot()

	question, err := s.rewriter.Rewrite(ctx, userInput, history)
	if err != nil {
		return nil, fmt.Errorf("rewrite failed: %w", err)
	}

	passages, err := s.retriever.Retrieve(ctx, question, s.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	contextText := BuildContext(passages)

	answer, err := s.answerer.Answer(ctx, question, contextText, history)
	if err != nil {
		return nil, err
	}

	// No citations for an unanswered question, and refusals are never
	// persisted into the model-visible history.
	sources := []domain.Citation{}
	if answer.Refused {
		s.logger.Info("turn refused",
			zap.String("question", question),
			zap.Int("passages", len(passages)),
		)
	} else {
		sources = DedupeSources(passages, s.maxSources)
		s.state.Append(question, answer.Text)
	}

	s.record(question, answer, sources)

	return &domain.ChatResult{
		Answer:  answer.Text,
		History: s.state.Snapshot(),
		Sources: sources,
	}, nil
}

// record appends the turn to the audit transcript. Transcript failures
// are logged, never surfaced: the answer is already computed.
func (s *ChatService) record(question string, answer domain.Answer, sources []domain.Citation) {
	if s.transcripts == nil {
		return
	}

	entries := []*repository.TranscriptEntry{
		{Role: domain.RoleHuman, Content: question},
		{Role: domain.RoleAssistant, Content: answer.Text, Refused: answer.Refused, Sources: sources},
	}
	for _, entry := range entries {
		if err := s.transcripts.Record(entry); err != nil {
			s.logger.Warn("failed to record transcript entry", zap.Error(err))
		}
	}
}
