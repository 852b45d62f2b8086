package router

import (
	"context"
	"strings"

	"github.com/hupe1980/estatemesh/core"
	"github.com/hupe1980/estatemesh/logging"
	"github.com/hupe1980/estatemesh/model"
)

// FinalAnswerMarker terminates a handoff exchange when a specialist's output
// begins with it.
const FinalAnswerMarker = "FINAL ANSWER"

// DefaultMaxHops bounds a handoff exchange when no explicit limit is set.
const DefaultMaxHops = 8

// Status is the terminal state of a handoff exchange.
type Status int

const (
	// StatusComplete means the exchange terminated normally (marker seen or
	// the coordinator answered directly).
	StatusComplete Status = iota
	// StatusIncomplete means the hop limit was reached before termination.
	// The transcript so far is still returned.
	StatusIncomplete
)

// String returns the string representation of the status.
func (s Status) String() string {
	if s == StatusIncomplete {
		return "incomplete"
	}
	return "complete"
}

// Participant produces one conversational turn from the transcript so far.
type Participant interface {
	Name() string
	Respond(ctx context.Context, t core.Transcript) (core.Message, error)
}

// ModelParticipant is a Participant backed by an LLM with fixed instructions.
type ModelParticipant struct {
	name         string
	llm          model.Model
	instructions string
}

// NewModelParticipant creates a model backed exchange participant.
func NewModelParticipant(name string, llm model.Model, instructions string) *ModelParticipant {
	return &ModelParticipant{name: name, llm: llm, instructions: instructions}
}

// Name implements Participant.
func (p *ModelParticipant) Name() string { return p.name }

// Respond implements Participant.
func (p *ModelParticipant) Respond(ctx context.Context, t core.Transcript) (core.Message, error) {
	answer, err := model.Text(ctx, p.llm, model.Request{
		Instructions: p.instructions,
		Messages:     t,
	})
	if err != nil {
		return core.Message{}, err
	}
	return core.NewAssistantMessage(p.name, answer), nil
}

// specialistEntry pairs a participant with the predicate selecting it from a
// coordinator reply.
type specialistEntry struct {
	participant Participant
	match       func(reply string) bool
}

// ExchangeOptions configure a handoff exchange.
type ExchangeOptions struct {
	MaxHops int
	Logger  logging.Logger
}

// Exchange runs a bounded coordinator/specialist conversation. The
// coordinator speaks first; when its reply selects a specialist, control
// hands off, and the specialist either terminates the exchange by prefixing
// its output with FinalAnswerMarker or hands control back. A hop counter
// caps the total number of turns: exceeding MaxHops yields StatusIncomplete
// together with the transcript so far, never an error or an endless loop.
type Exchange struct {
	coordinator Participant
	specialists []specialistEntry
	opts        ExchangeOptions
}

// NewExchange creates a handoff exchange led by the given coordinator.
func NewExchange(coordinator Participant, optFns ...func(o *ExchangeOptions)) *Exchange {
	opts := ExchangeOptions{
		MaxHops: DefaultMaxHops,
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxHops <= 0 {
		opts.MaxHops = DefaultMaxHops
	}
	return &Exchange{coordinator: coordinator, opts: opts}
}

// AddSpecialist registers a specialist selected when match is true for the
// coordinator's reply. Specialists are probed in registration order.
func (e *Exchange) AddSpecialist(p Participant, match func(reply string) bool) {
	e.specialists = append(e.specialists, specialistEntry{participant: p, match: match})
}

// Run drives the exchange for the given query. It always returns a
// transcript containing at least the user query; participant failures append
// an apologetic turn and complete the exchange rather than erroring.
func (e *Exchange) Run(ctx context.Context, query string) (core.Transcript, Status) {
	t := core.Transcript{core.NewUserMessage(query)}

	current := e.coordinator
	for hops := 0; ; hops++ {
		if hops >= e.opts.MaxHops {
			e.opts.Logger.Warn("handoff.hop_limit", "max_hops", e.opts.MaxHops)
			return t, StatusIncomplete
		}

		msg, err := current.Respond(ctx, t)
		if err != nil {
			e.opts.Logger.Error("handoff.respond.failed", "participant", current.Name(), "error", err.Error())
			t = t.Append(core.NewAssistantMessage(current.Name(),
				"I apologize, but I'm experiencing technical difficulties at the moment. Please try again later."))
			return t, StatusComplete
		}
		t = t.Append(msg)
		e.opts.Logger.Debug("handoff.turn", "participant", current.Name(), "hop", hops)

		if current != e.coordinator {
			if strings.HasPrefix(msg.Content, FinalAnswerMarker) {
				return t, StatusComplete
			}
			// Specialist did not finish; hand control back.
			current = e.coordinator
			continue
		}

		specialist := e.selectSpecialist(msg.Content)
		if specialist == nil {
			// Coordinator answered directly.
			return t, StatusComplete
		}
		current = specialist
	}
}

func (e *Exchange) selectSpecialist(reply string) Participant {
	for _, entry := range e.specialists {
		if entry.match(reply) {
			return entry.participant
		}
	}
	return nil
}
