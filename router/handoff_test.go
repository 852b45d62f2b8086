package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/estatemesh/core"
)

// scriptParticipant replays a fixed sequence of replies.
type scriptParticipant struct {
	name    string
	replies []string
	err     error
	i       int
}

func (p *scriptParticipant) Name() string { return p.name }

func (p *scriptParticipant) Respond(_ context.Context, _ core.Transcript) (core.Message, error) {
	if p.err != nil {
		return core.Message{}, p.err
	}
	reply := p.replies[len(p.replies)-1]
	if p.i < len(p.replies) {
		reply = p.replies[p.i]
	}
	p.i++
	return core.NewAssistantMessage(p.name, reply), nil
}

func TestExchangeMarkerTerminates(t *testing.T) {
	coordinator := &scriptParticipant{name: "coordinator", replies: []string{"we need a listing specialist"}}
	specialist := &scriptParticipant{name: "property", replies: []string{"FINAL ANSWER: here are the listings"}}

	ex := NewExchange(coordinator)
	ex.AddSpecialist(specialist, func(reply string) bool { return strings.Contains(reply, "listing") })

	transcript, status := ex.Run(context.Background(), "find listings")

	assert.Equal(t, StatusComplete, status)
	require.Len(t, transcript, 3) // user, coordinator, specialist
	assert.True(t, strings.HasPrefix(transcript[2].Content, FinalAnswerMarker))
}

func TestExchangeHopLimitYieldsIncomplete(t *testing.T) {
	coordinator := &scriptParticipant{name: "coordinator", replies: []string{"we need a listing specialist"}}
	specialist := &scriptParticipant{name: "property", replies: []string{"still working on it"}}

	ex := NewExchange(coordinator, func(o *ExchangeOptions) { o.MaxHops = 5 })
	ex.AddSpecialist(specialist, func(reply string) bool { return strings.Contains(reply, "listing") })

	transcript, status := ex.Run(context.Background(), "find listings")

	assert.Equal(t, StatusIncomplete, status)
	// The transcript so far is still returned: user + one turn per hop.
	assert.Len(t, transcript, 1+5)
}

func TestExchangeCoordinatorAnswersDirectly(t *testing.T) {
	coordinator := &scriptParticipant{name: "coordinator", replies: []string{"the answer is 42"}}

	ex := NewExchange(coordinator)
	ex.AddSpecialist(
		&scriptParticipant{name: "property", replies: []string{"unused"}},
		func(reply string) bool { return strings.Contains(reply, "listing") },
	)

	transcript, status := ex.Run(context.Background(), "what is the answer")

	assert.Equal(t, StatusComplete, status)
	require.Len(t, transcript, 2)
	assert.Equal(t, "the answer is 42", transcript[1].Content)
}

func TestExchangeSpecialistHandsBack(t *testing.T) {
	coordinator := &scriptParticipant{name: "coordinator", replies: []string{
		"we need a listing specialist",
		"thanks, that settles it",
	}}
	specialist := &scriptParticipant{name: "property", replies: []string{"partial findings, over to you"}}

	ex := NewExchange(coordinator)
	ex.AddSpecialist(specialist, func(reply string) bool { return strings.Contains(reply, "listing") })

	transcript, status := ex.Run(context.Background(), "find listings")

	assert.Equal(t, StatusComplete, status)
	require.Len(t, transcript, 4) // user, coordinator, specialist, coordinator
	assert.Equal(t, "thanks, that settles it", transcript[3].Content)
}

func TestExchangeRespondErrorCompletesWithApology(t *testing.T) {
	coordinator := &scriptParticipant{name: "coordinator", err: errors.New("model down")}

	ex := NewExchange(coordinator)
	transcript, status := ex.Run(context.Background(), "anything")

	assert.Equal(t, StatusComplete, status)
	require.Len(t, transcript, 2)
	assert.Contains(t, transcript[1].Content, "technical difficulties")
}

func TestExchangeSpecialistsProbedInOrder(t *testing.T) {
	coordinator := &scriptParticipant{name: "coordinator", replies: []string{"needs listing and neighborhood info"}}
	first := &scriptParticipant{name: "first", replies: []string{"FINAL ANSWER: from first"}}
	second := &scriptParticipant{name: "second", replies: []string{"FINAL ANSWER: from second"}}

	ex := NewExchange(coordinator)
	ex.AddSpecialist(first, func(reply string) bool { return strings.Contains(reply, "listing") })
	ex.AddSpecialist(second, func(reply string) bool { return strings.Contains(reply, "neighborhood") })

	transcript, status := ex.Run(context.Background(), "go")

	assert.Equal(t, StatusComplete, status)
	require.Len(t, transcript, 3)
	assert.Equal(t, "first", transcript[2].Name)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "complete", StatusComplete.String())
	assert.Equal(t, "incomplete", StatusIncomplete.String())
}
