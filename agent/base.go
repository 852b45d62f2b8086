package agent

// BaseAgent supplies the identity fields shared by all agent implementations.
// Embed it and implement Run to create a new agent.
type BaseAgent struct {
	name        string
	description string
}

// NewBaseAgent creates a BaseAgent with the given name and description.
func NewBaseAgent(name, description string) BaseAgent {
	return BaseAgent{name: name, description: description}
}

// Name returns the unique agent name used for message attribution.
func (a *BaseAgent) Name() string { return a.name }

// Description returns the human readable agent description.
func (a *BaseAgent) Description() string { return a.description }
