// Package pipeline runs the fixed real estate processing sequence:
// coordinator announcement, neighborhood, property and price specialists,
// then final synthesis. The sequence is a straight-line state machine with
// one transition per state; it never branches, skips or retries a stage.
package pipeline

import (
	"context"
	"fmt"

	"github.com/hupe1980/estatemesh/agent"
	"github.com/hupe1980/estatemesh/core"
	"github.com/hupe1980/estatemesh/logging"
	"github.com/hupe1980/estatemesh/model"
	"github.com/hupe1980/estatemesh/search"
)

// State identifies a stage of the pipeline.
type State int

const (
	// StateStart emits the coordinator announcement.
	StateStart State = iota
	// StateNeighborhood runs the neighborhood specialist.
	StateNeighborhood
	// StateProperty runs the property listing specialist.
	StateProperty
	// StatePrice runs the price analysis specialist.
	StatePrice
	// StateSynthesize runs the final synthesis.
	StateSynthesize
	// StateDone is the terminal state.
	StateDone
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateNeighborhood:
		return "neighborhood"
	case StateProperty:
		return "property"
	case StatePrice:
		return "price"
	case StateSynthesize:
		return "synthesize"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// next returns the single successor of a state.
func (s State) next() State {
	if s >= StateDone {
		return StateDone
	}
	return s + 1
}

// Options configure the pipeline coordinator. Every stage agent can be
// replaced, enabling deterministic test doubles.
type Options struct {
	Announcer    core.Agent
	Neighborhood core.Agent
	Property     core.Agent
	Price        core.Agent
	Synthesizer  core.Agent
	Logger       logging.Logger
	MaxResults   int
}

// Coordinator owns the service handles (model, search provider) and drives
// the five pipeline stages in fixed order.
type Coordinator struct {
	stages [StateDone]core.Agent
	logger logging.Logger
}

// NewCoordinator builds a pipeline coordinator around the given model and
// search provider. Stage agents default to the standard real estate agents
// but can be overridden through options.
func NewCoordinator(llm model.Model, provider search.Provider, optFns ...func(o *Options)) *Coordinator {
	opts := Options{
		Logger:     logging.NoOpLogger{},
		MaxResults: 5,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	maxResults := func(o *agent.SpecialistOptions) { o.MaxResults = opts.MaxResults }

	if opts.Announcer == nil {
		opts.Announcer = agent.NewAnnouncer()
	}
	if opts.Neighborhood == nil {
		opts.Neighborhood = agent.NewNeighborhoodAgent(provider, maxResults)
	}
	if opts.Property == nil {
		opts.Property = agent.NewPropertyAgent(provider, maxResults)
	}
	if opts.Price == nil {
		opts.Price = agent.NewPriceAgent(provider, maxResults)
	}
	if opts.Synthesizer == nil {
		opts.Synthesizer = agent.NewSynthesizer(llm)
	}

	c := &Coordinator{logger: opts.Logger}
	c.stages[StateStart] = opts.Announcer
	c.stages[StateNeighborhood] = opts.Neighborhood
	c.stages[StateProperty] = opts.Property
	c.stages[StatePrice] = opts.Price
	c.stages[StateSynthesize] = opts.Synthesizer
	return c
}

// Run executes the pipeline asynchronously. Appended messages stream on the
// returned message channel in stage order; both channels close when the run
// terminates. Exactly five messages are emitted on a completed run.
func (c *Coordinator) Run(ctx context.Context, sessionID, runID, query string, transcript core.Transcript) (<-chan core.Message, <-chan error) {
	msgCh := make(chan core.Message, 8)
	errCh := make(chan error, 1)

	go func() {
		defer close(msgCh)
		defer close(errCh)

		rc := core.NewRunContext(ctx, sessionID, runID, query, transcript, msgCh, c.logger)

		for state := StateStart; state != StateDone; state = state.next() {
			stage := c.stages[state]
			rc.LogDebug("pipeline.stage", "state", state.String(), "agent", stage.Name())
			if err := stage.Run(rc); err != nil {
				errCh <- fmt.Errorf("pipeline stage %s: %w", state.String(), err)
				return
			}
		}
	}()

	return msgCh, errCh
}

// RunSync drives Run to completion and returns the extended transcript. It
// drains both channels so the producing goroutine always exits.
func (c *Coordinator) RunSync(ctx context.Context, sessionID, runID, query string, transcript core.Transcript) (core.Transcript, error) {
	msgCh, errCh := c.Run(ctx, sessionID, runID, query, transcript)

	out := transcript
	var runErr error
	for msgCh != nil || errCh != nil {
		select {
		case msg, ok := <-msgCh:
			if !ok {
				msgCh = nil
				continue
			}
			out = out.Append(msg)
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil && runErr == nil {
				runErr = err
			}
		}
	}
	return out, runErr
}
