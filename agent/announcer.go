package agent

import "github.com/hupe1980/estatemesh/core"

// AnnounceMessage is the fixed message opening every pipeline run.
const AnnounceMessage = "Real Estate Coordinator: Starting sub-agent processing..."

// Announcer is the first pipeline stage. It appends the fixed coordinator
// announcement so downstream consumers can observe that processing started.
type Announcer struct {
	BaseAgent
}

// NewAnnouncer creates the coordinator announcement agent.
func NewAnnouncer() *Announcer {
	return &Announcer{
		BaseAgent: NewBaseAgent("Coordinator", "Announces the start of sub-agent processing"),
	}
}

// Run implements core.Agent.
func (a *Announcer) Run(rc *core.RunContext) error {
	rc.LogDebug("agent.run", "agent", a.Name())
	return rc.Append(core.NewAssistantMessage(a.Name(), AnnounceMessage))
}
