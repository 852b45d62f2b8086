// Package estatemesh is the top level façade for the real estate agent
// pipeline. It wires the model, the search provider and the session store
// into a Coordinator and exposes a single Process entry point that never
// returns an error: every failure path resolves to a user-facing string.
package estatemesh

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/hupe1980/estatemesh/core"
	"github.com/hupe1980/estatemesh/logging"
	"github.com/hupe1980/estatemesh/model"
	"github.com/hupe1980/estatemesh/pipeline"
	"github.com/hupe1980/estatemesh/search"
	"github.com/hupe1980/estatemesh/session"
)

const (
	errPrefix = "I apologize, but I encountered an error while processing your real estate query: "
	noAnswer  = "I'm sorry, I couldn't generate a response to your real estate query."
)

// Options configure the App.
type Options struct {
	SessionStore core.SessionStore
	Logger       logging.Logger
	MaxResults   int
	Coordinator  *pipeline.Coordinator // overrides the default pipeline wiring
}

// App bundles the configured pipeline with transcript persistence.
type App struct {
	coordinator *pipeline.Coordinator
	store       core.SessionStore
	logger      logging.Logger
}

// New creates an App around the given model and search provider.
func New(llm model.Model, provider search.Provider, optFns ...func(o *Options)) *App {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
		MaxResults:   5,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	coordinator := opts.Coordinator
	if coordinator == nil {
		coordinator = pipeline.NewCoordinator(llm, provider, func(o *pipeline.Options) {
			o.Logger = opts.Logger
			o.MaxResults = opts.MaxResults
		})
	}

	return &App{
		coordinator: coordinator,
		store:       opts.SessionStore,
		logger:      opts.Logger,
	}
}

// Process runs the full pipeline for one query and returns the final answer
// text. A non-empty threadID loads and persists the transcript for that
// thread; an empty threadID starts fresh with no persistence. Process never
// panics or returns an error: terminal failures map to an apology message.
func (a *App) Process(ctx context.Context, query, threadID string) string {
	answer, err := a.ProcessWithStatus(ctx, query, threadID)
	if err != nil {
		return errPrefix + err.Error()
	}
	return answer
}

// ProcessWithStatus is the error-returning variant of Process for callers
// that want to distinguish a pipeline failure from a degraded answer.
func (a *App) ProcessWithStatus(ctx context.Context, query, threadID string) (string, error) {
	runID := uuid.NewString()
	sessionID := threadID
	if sessionID == "" {
		sessionID = runID
	}

	var transcript core.Transcript
	if threadID != "" && a.store != nil {
		if sess, err := a.store.Get(threadID); err == nil {
			transcript = sess.History()
		} else {
			a.logger.Warn("app.session.load_failed", "thread_id", threadID, "error", err.Error())
		}
	}

	base := len(transcript)
	transcript = transcript.Append(core.NewUserMessage(query))

	a.logger.Info("app.process", "run_id", runID, "thread_id", threadID)

	final, err := a.coordinator.RunSync(ctx, sessionID, runID, query, transcript)
	if err != nil {
		a.logger.Error("app.process.failed", "run_id", runID, "error", err.Error())
		return "", err
	}

	if threadID != "" && a.store != nil {
		if err := a.store.AppendMessages(threadID, final[base:]...); err != nil {
			a.logger.Warn("app.session.save_failed", "thread_id", threadID, "error", err.Error())
		}
	}

	if msg, ok := final.LastAssistant(); ok && strings.TrimSpace(msg.Content) != "" {
		return msg.Content, nil
	}
	return noAnswer, nil
}
