package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wealthmate/captionrag/internal/domain"
	"github.com/wealthmate/captionrag/internal/service"
)

func TestBuildContext_Empty(t *testing.T) {
	assert.Equal(t, "", service.BuildContext(nil))
	assert.Equal(t, "", service.BuildContext([]domain.Passage{}))
}

func TestBuildContext_JoinsInOrder(t *testing.T) {
	passages := []domain.Passage{
		{Content: "first"},
		{Content: "second"},
		{Content: "third"},
	}

	out := service.BuildContext(passages)
	assert.Equal(t, "first\n\n---\nsecond\n\n---\nthird", out)
}

func TestBuildContext_SinglePassage(t *testing.T) {
	out := service.BuildContext([]domain.Passage{{Content: "only"}})
	assert.Equal(t, "only", out)
}
