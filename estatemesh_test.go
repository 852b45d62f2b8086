package estatemesh

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/estatemesh/agent"
	"github.com/hupe1980/estatemesh/model"
	"github.com/hupe1980/estatemesh/session"
)

// brokenProvider rejects every search call.
type brokenProvider struct{}

func (brokenProvider) Search(context.Context, string, int) (any, error) {
	return nil, errors.New("search unavailable")
}

// fixedProvider returns one canned result.
type fixedProvider struct{}

func (fixedProvider) Search(context.Context, string, int) (any, error) {
	return map[string]any{
		"results": []any{
			map[string]any{"content": "A listing", "url": "https://example.com/listing"},
		},
	}, nil
}

func TestProcessReturnsAnswer(t *testing.T) {
	llm := model.NewMockModel("mock", "mock")
	app := New(llm, fixedProvider{})

	answer := app.Process(context.Background(), "Find me an apartment in San Francisco with a budget of $3000 per month", "")
	assert.NotEmpty(t, answer)
}

func TestProcessDegradedIsDeterministic(t *testing.T) {
	llm := model.NewMockModel("mock", "mock")
	llm.FailWith(errors.New("model unavailable"))
	app := New(llm, brokenProvider{})

	first := app.Process(context.Background(), "Find me apartments", "")
	second := app.Process(context.Background(), "Find me apartments", "")

	// With search and synthesis both down, the fixed fallback answer surfaces.
	assert.Equal(t, agent.FallbackAnswer, first)
	assert.Equal(t, first, second)
	for _, url := range []string{
		"https://www.rent.com/california/san-francisco-apartments/max-price-3000",
		"https://www.forrent.com/find/CA/metro-San+Francisco+Bay/San+Francisco/price-Less+than+3000",
		"https://www.zillow.com/san-francisco-ca/apartments/under-3000/",
	} {
		assert.Contains(t, first, url)
	}
}

func TestProcessPersistsThreadTranscript(t *testing.T) {
	llm := model.NewMockModel("mock", "mock")
	store := session.NewInMemoryStore()
	app := New(llm, fixedProvider{}, func(o *Options) {
		o.SessionStore = store
	})

	app.Process(context.Background(), "Find me an apartment in Oakland, please", "thread-1")

	sess, err := store.Get("thread-1")
	require.NoError(t, err)

	// One user message plus the five pipeline messages.
	history := sess.History()
	require.Len(t, history, 6)
	assert.Equal(t, "Find me an apartment in Oakland, please", history[0].Content)
	assert.Equal(t, agent.AnnounceMessage, history[1].Content)

	// A second turn on the same thread extends the stored transcript.
	app.Process(context.Background(), "What about Berkeley?", "thread-1")
	sess, err = store.Get("thread-1")
	require.NoError(t, err)
	assert.Len(t, sess.History(), 12)
}

func TestProcessWithoutThreadDoesNotPersist(t *testing.T) {
	llm := model.NewMockModel("mock", "mock")
	store := session.NewInMemoryStore()
	app := New(llm, fixedProvider{}, func(o *Options) {
		o.SessionStore = store
	})

	app.Process(context.Background(), "Find me apartments", "")

	// Runs without a thread id leave no trace keyed by the query.
	sess, err := store.Get("Find me apartments")
	require.NoError(t, err)
	assert.Empty(t, sess.History())
}

func TestProcessWithStatus(t *testing.T) {
	llm := model.NewMockModel("mock", "mock")
	app := New(llm, fixedProvider{})

	answer, err := app.ProcessWithStatus(context.Background(), "Find me apartments", "")
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
}

func TestProcessNeverReturnsEmpty(t *testing.T) {
	llm := model.NewMockModel("mock", "mock")
	llm.FailWith(errors.New("model unavailable"))
	app := New(llm, brokenProvider{})

	for _, query := range []string{"", "hi", "Find me an apartment in Oakland, under $2500"} {
		assert.NotEmpty(t, app.Process(context.Background(), query, ""))
	}
}
