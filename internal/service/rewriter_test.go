package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthmate/captionrag/internal/domain"
	"github.com/wealthmate/captionrag/internal/service"
)

func TestRuleRewriter_EmptyHistory(t *testing.T) {
	out, err := service.RuleRewriter{}.Rewrite(context.Background(), "What is dollar-cost averaging?", nil)
	require.NoError(t, err)
	assert.Equal(t, "What is dollar-cost averaging?", out)
}

func TestRuleRewriter_MergesLastHumanTurn(t *testing.T) {
	history := []domain.Turn{
		{Role: domain.RoleHuman, Content: "What are index funds?"},
		{Role: domain.RoleAssistant, Content: "Index funds track a market index."},
	}

	out, err := service.RuleRewriter{}.Rewrite(context.Background(), "what about fees?", history)
	require.NoError(t, err)
	assert.Equal(t, "What are index funds?. Follow-up question: what about fees?", out)
}

func TestRuleRewriter_NoHumanTurn(t *testing.T) {
	history := []domain.Turn{
		{Role: domain.RoleAssistant, Content: "Hello!"},
	}

	out, err := service.RuleRewriter{}.Rewrite(context.Background(), "what about fees?", history)
	require.NoError(t, err)
	assert.Equal(t, "what about fees?", out)
}

func TestRuleRewriter_Pure(t *testing.T) {
	history := []domain.Turn{
		{Role: domain.RoleHuman, Content: "What are bonds?"},
		{Role: domain.RoleAssistant, Content: "Bonds are debt instruments."},
	}

	first, err := service.RuleRewriter{}.Rewrite(context.Background(), "and stocks?", history)
	require.NoError(t, err)
	second, err := service.RuleRewriter{}.Rewrite(context.Background(), "and stocks?", history)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestModelRewriter_EmptyHistoryPassesThrough(t *testing.T) {
	gen := &fakeGenerator{response: "should not be called"}
	r := service.NewModelRewriter(gen)

	out, err := r.Rewrite(context.Background(), "What is a bond?", nil)
	require.NoError(t, err)
	assert.Equal(t, "What is a bond?", out)
	assert.Empty(t, gen.prompts)
}

func TestModelRewriter_UsesModelOutput(t *testing.T) {
	gen := &fakeGenerator{response: "What fees do index funds charge?"}
	r := service.NewModelRewriter(gen)

	history := []domain.Turn{
		{Role: domain.RoleHuman, Content: "What are index funds?"},
		{Role: domain.RoleAssistant, Content: "They track an index."},
	}

	out, err := r.Rewrite(context.Background(), "what about fees?", history)
	require.NoError(t, err)
	assert.Equal(t, "What fees do index funds charge?", out)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "What are index funds?")
	assert.Contains(t, gen.prompts[0], "what about fees?")
}

func TestModelRewriter_FallsBackOnErrorAndSentinel(t *testing.T) {
	history := []domain.Turn{
		{Role: domain.RoleHuman, Content: "What are index funds?"},
	}

	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{name: "generator error", gen: &fakeGenerator{err: errors.New("backend down")}},
		{name: "sentinel", gen: &fakeGenerator{response: "CANNOT_REWRITE"}},
		{name: "empty output", gen: &fakeGenerator{response: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := service.NewModelRewriter(tt.gen)
			out, err := r.Rewrite(context.Background(), "what about fees?", history)
			require.NoError(t, err)
			assert.Equal(t, "what about fees?", out)
		})
	}
}
