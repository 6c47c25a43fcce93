package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/wealthmate/captionrag/internal/domain"
)

// RefusalText is the fixed answer used when there is nothing to ground
// an answer on. It carries the refusal marker.
const RefusalText = "I don't know. The videos I have don't seem to cover that."

const answerInstructions = `You answer questions about a video playlist using ONLY the supplied material.
Rules:
- Answer strictly from the material between the CONTEXT markers. Do not use outside knowledge.
- If the material does not contain the answer, reply that you don't know.
- If the question is about you, your identity, or your capabilities, you may answer it directly.
- When you do answer from the material, you may close by suggesting the user watch the original videos for more detail.
- Never mention "context", "documents", or "retrieved passages" to the user.`

// Answerer produces a grounded answer as a structured outcome. It is a
// pure function of (question, context, history); no state survives
// between calls.
type Answerer struct {
	generator Generator
}

// NewAnswerer creates an Answerer.
func NewAnswerer(generator Generator) *Answerer {
	return &Answerer{generator: generator}
}

// Answer generates a grounded answer. Empty context short-circuits to
// the fixed refusal without a model call.
func (a *Answerer) Answer(ctx context.Context, question, contextText string, history []domain.Turn) (domain.Answer, error) {
	if strings.TrimSpace(contextText) == "" {
		return domain.Answer{Text: RefusalText, Refused: true}, nil
	}

	text, err := a.generator.Generate(ctx, buildAnswerPrompt(question, contextText, history))
	if err != nil {
		return domain.Answer{}, fmt.Errorf("answer generation failed: %w", err)
	}

	text = strings.TrimSpace(text)
	return domain.Answer{Text: text, Refused: IsRefusal(text)}, nil
}

func buildAnswerPrompt(question, contextText string, history []domain.Turn) string {
	var sb strings.Builder
	sb.WriteString(answerInstructions)

	if len(history) > 0 {
		sb.WriteString("\n\nConversation so far:\n")
		for _, turn := range history {
			sb.WriteString(turn.Role)
			sb.WriteString(": ")
			sb.WriteString(turn.Content)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nCONTEXT:\n")
	sb.WriteString(contextText)
	sb.WriteString("\nEND CONTEXT\n")

	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\n\nAnswer:")
	return sb.String()
}

// IsRefusal reports whether generated text carries the "do not know"
// marker. Kept for compatibility with existing prompts; pipeline
// control flow branches on Answer.Refused, which is derived from this
// exactly once at generation time.
func IsRefusal(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "don't know") || strings.Contains(lower, "do not know")
}
