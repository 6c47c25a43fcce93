package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthmate/captionrag/internal/domain"
	"github.com/wealthmate/captionrag/internal/service"
)

func TestIsRefusal(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"I don't know.", true},
		{"I do not know the answer to that.", true},
		{"Sorry, I DON'T KNOW.", true},
		{"Dollar-cost averaging spreads purchases over time.", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, service.IsRefusal(tt.text), tt.text)
	}
}

func TestAnswerer_EmptyContextShortCircuits(t *testing.T) {
	gen := &fakeGenerator{response: "should not be called"}
	a := service.NewAnswerer(gen)

	answer, err := a.Answer(context.Background(), "What is a SPAC?", "   ", nil)
	require.NoError(t, err)
	assert.True(t, answer.Refused)
	assert.Equal(t, service.RefusalText, answer.Text)
	assert.Empty(t, gen.prompts)
}

func TestAnswerer_GroundedAnswer(t *testing.T) {
	gen := &fakeGenerator{response: "DCA means investing fixed amounts regularly."}
	a := service.NewAnswerer(gen)

	history := []domain.Turn{
		{Role: domain.RoleHuman, Content: "What are index funds?"},
		{Role: domain.RoleAssistant, Content: "They track an index."},
	}

	answer, err := a.Answer(context.Background(), "What is DCA?", "Dollar-cost averaging...", history)
	require.NoError(t, err)
	assert.False(t, answer.Refused)
	assert.Equal(t, "DCA means investing fixed amounts regularly.", answer.Text)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "Dollar-cost averaging...")
	assert.Contains(t, prompt, "What is DCA?")
	assert.Contains(t, prompt, "What are index funds?")
}

func TestAnswerer_MarkerSetsRefused(t *testing.T) {
	gen := &fakeGenerator{response: "I don't know based on these videos."}
	a := service.NewAnswerer(gen)

	answer, err := a.Answer(context.Background(), "What is a SPAC?", "unrelated material", nil)
	require.NoError(t, err)
	assert.True(t, answer.Refused)
}
