package core

import (
	"context"

	"github.com/hupe1980/estatemesh/logging"
)

// RunContext carries execution state & helpers for an agent run.
// It encapsulates the mutable, per-invocation execution scope passed to an
// Agent's Run method. It aggregates:
//   - The ambient cancellation Context
//   - Identifiers (SessionID, RunID)
//   - The original user Query (slot extraction always works on this, not on
//     intermediate agent output)
//   - The working Transcript, extended exclusively through Append
//   - An optional Emit channel streaming each appended message to the caller
type RunContext struct {
	Context          context.Context
	SessionID, RunID string
	Query            string
	Transcript       Transcript
	Emit             chan<- Message

	*loggerAdapter
}

// NewRunContext constructs a RunContext around the given transcript.
func NewRunContext(
	ctx context.Context,
	sessionID, runID string,
	query string,
	transcript Transcript,
	emit chan<- Message,
	logger logging.Logger,
) *RunContext {
	return &RunContext{
		Context:       ctx,
		SessionID:     sessionID,
		RunID:         runID,
		Query:         query,
		Transcript:    transcript,
		Emit:          emit,
		loggerAdapter: newLoggerAdapter(logger),
	}
}

// Done returns a channel closed when the underlying context is cancelled.
func (rc *RunContext) Done() <-chan struct{} { return rc.Context.Done() }

// Err returns the cancellation error (if any) from the underlying context.
func (rc *RunContext) Err() error { return rc.Context.Err() }

// Append extends the working transcript and forwards each message on the Emit
// channel when one is configured. Returns the context error if cancellation
// races the emission.
func (rc *RunContext) Append(msgs ...Message) error {
	rc.Transcript = rc.Transcript.Append(msgs...)
	if rc.Emit == nil {
		return nil
	}
	for _, m := range msgs {
		select {
		case <-rc.Context.Done():
			return rc.Context.Err()
		case rc.Emit <- m:
		}
	}
	return nil
}
