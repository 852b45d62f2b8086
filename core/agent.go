package core

// Agent is a single processing stage in a conversation run. Implementations
// read the working transcript from the RunContext, do their work (search,
// model call, formatting) and append any resulting messages via
// RunContext.Append.
//
// Run returns an error only for infrastructure failures (context cancellation,
// emission failure). Domain level problems such as a failed search are
// absorbed into fallback messages so a run always yields a usable transcript.
type Agent interface {
	// Name returns the unique agent name used for message attribution.
	Name() string

	// Run executes the agent against the given run context.
	Run(rc *RunContext) error
}

// AgentInfo carries identifying metadata about an agent for logging.
type AgentInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
