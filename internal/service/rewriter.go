package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/wealthmate/captionrag/internal/domain"
)

// Rewriter turns a possibly-elliptical follow-up question into a
// standalone query. Implementations never fail outright: when no
// rewrite is possible they return the original question.
type Rewriter interface {
	Rewrite(ctx context.Context, question string, history []domain.Turn) (string, error)
}

// RuleRewriter merges the question with the most recent human turn.
// It is a pure function of (question, history).
type RuleRewriter struct{}

// Rewrite returns the question verbatim when no prior human turn
// exists, otherwise "{last human}. Follow-up question: {question}".
func (RuleRewriter) Rewrite(_ context.Context, question string, history []domain.Turn) (string, error) {
	last := lastHumanTurn(history)
	if last == "" {
		return question, nil
	}
	return fmt.Sprintf("%s. Follow-up question: %s", last, question), nil
}

// NewRewriter selects a rewriting strategy by name. Anything other
// than "model" gets the rule-based rewriter.
func NewRewriter(strategy string, generator Generator) Rewriter {
	if strategy == "model" {
		return NewModelRewriter(generator)
	}
	return RuleRewriter{}
}

// rewriteSentinel is what the model is told to emit when it cannot
// produce a standalone rewrite.
const rewriteSentinel = "CANNOT_REWRITE"

const rewriteInstructions = `You rewrite user questions so they stand alone.
Rules:
- If the question already stands alone as a question about the video material, return it unchanged.
- If the question is about you, your identity, or your capabilities, return it unchanged.
- Otherwise rewrite it into a standalone question using the previous questions below as context.
- Never answer the question. Only rewrite it.
- If you cannot produce a standalone rewrite, return exactly ` + rewriteSentinel + `.`

// ModelRewriter asks the LLM to rewrite the question, conditioned on
// the last few human turns. Any failure falls back to the original
// question so the pipeline never stalls on rewriting.
type ModelRewriter struct {
	generator Generator
}

// NewModelRewriter creates a model-based rewriter.
func NewModelRewriter(generator Generator) *ModelRewriter {
	return &ModelRewriter{generator: generator}
}

// Rewrite conditions the rewrite on the last 3 human turns.
func (r *ModelRewriter) Rewrite(ctx context.Context, question string, history []domain.Turn) (string, error) {
	recent := lastHumanTurns(history, 3)
	if len(recent) == 0 {
		return question, nil
	}

	var sb strings.Builder
	sb.WriteString(rewriteInstructions)
	sb.WriteString("\n\nPrevious questions:\n")
	for _, q := range recent {
		sb.WriteString("- ")
		sb.WriteString(q)
		sb.WriteString("\n")
	}
	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)

	out, err := r.generator.Generate(ctx, sb.String())
	if err != nil {
		return question, nil
	}

	out = strings.TrimSpace(out)
	if out == "" || out == rewriteSentinel {
		return question, nil
	}
	return out, nil
}

func lastHumanTurn(history []domain.Turn) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == domain.RoleHuman {
			return history[i].Content
		}
	}
	return ""
}

func lastHumanTurns(history []domain.Turn, n int) []string {
	var out []string
	for i := len(history) - 1; i >= 0 && len(out) < n; i-- {
		if history[i].Role == domain.RoleHuman {
			out = append(out, history[i].Content)
		}
	}
	// restore chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
