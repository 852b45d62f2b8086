package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/estatemesh/model"
)

func TestModelClassifierSingleWordReplies(t *testing.T) {
	tests := []struct {
		reply string
		want  Category
	}{
		{"sql", CategorySQL},
		{" SQL \n", CategorySQL},
		{"analysis", CategoryAnalysis},
		{"fallback", CategoryFallback},
	}
	for _, tt := range tests {
		llm := model.NewMockModel("mock", "mock")
		llm.AddResponse("the query", tt.reply)

		got, err := NewModelClassifier(llm).Classify(context.Background(), "the query")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "reply %q", tt.reply)
	}
}

func TestModelClassifierChattyReplyUsesKeywordRules(t *testing.T) {
	llm := model.NewMockModel("mock", "mock")
	llm.AddResponse("the query", "This one clearly needs a SQL query against the database.")

	got, err := NewModelClassifier(llm).Classify(context.Background(), "the query")
	require.NoError(t, err)
	assert.Equal(t, CategorySQL, got)
}

func TestModelClassifierGenerationError(t *testing.T) {
	llm := model.NewMockModel("mock", "mock")
	llm.FailWith(errors.New("model down"))

	got, err := NewModelClassifier(llm).Classify(context.Background(), "the query")
	require.Error(t, err)
	assert.Equal(t, CategoryFallback, got)
}
