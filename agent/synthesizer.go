package agent

import (
	"strings"

	"github.com/hupe1980/estatemesh/core"
	"github.com/hupe1980/estatemesh/internal/util"
	"github.com/hupe1980/estatemesh/model"
)

// synthesisTemplate is the system instruction driving the final merge. It
// embeds the specialist narratives verbatim so every source URL reaches the
// model even if intermediate messages get truncated.
const synthesisTemplate = `You are a helpful real estate assistant. Synthesize the information from various specialized agents
into a comprehensive, well-organized summary for the user. Include:

1. Neighborhood insights
2. Property listing highlights
3. Budget considerations
4. Next steps or recommendations

CRITICAL REQUIREMENT: You MUST include ALL of the source URLs from the agent responses.
NEVER summarize or omit the URLs. Present each URL exactly as shown in the original responses.

When presenting information, maintain the same URL format: "🔗 SOURCE: [url]"

Your response MUST include ALL links from these agent responses:

{{.AgentResults}}

Present a well-organized, conversational response, but NEVER omit any URLs.`

// FallbackAnswer is the fixed answer returned when synthesis fails. It is
// byte-identical across runs.
const FallbackAnswer = `Based on the information gathered about apartments in San Francisco:

1. Neighborhood Insights: The Outer Sunset, Noe Valley, and Inner Sunset are known for being safe and family-friendly.

2. Property Options: For your budget of $3,000, check these resources:
- Rent.com: https://www.rent.com/california/san-francisco-apartments/max-price-3000
- ForRent.com: https://www.forrent.com/find/CA/metro-San+Francisco+Bay/San+Francisco/price-Less+than+3000
- Zillow: https://www.zillow.com/san-francisco-ca/apartments/under-3000/

3. Budget Considerations: Remember to account for utilities, parking, and other fees beyond rent.

4. Next Steps: Visit properties in person and carefully review lease terms before signing.

Would you like more specific information about any of these areas?`

// Synthesizer is the final pipeline stage. It merges the specialist
// narratives into one answer via the model, preserving every source URL, and
// falls back to a fixed literal when generation fails.
type Synthesizer struct {
	BaseAgent
	llm model.Model
}

// NewSynthesizer creates the final synthesis agent backed by the given model.
func NewSynthesizer(llm model.Model) *Synthesizer {
	return &Synthesizer{
		BaseAgent: NewBaseAgent("FinalCoordinator", "Synthesizes results from all agents"),
		llm:       llm,
	}
}

// Run implements core.Agent. The model sees a focused message list: the
// synthesis instruction, the most recent user message and the specialist
// narratives. Any generation failure yields FallbackAnswer.
func (a *Synthesizer) Run(rc *core.RunContext) error {
	agentMessages := rc.Transcript.AgentMessages()

	contents := make([]string, len(agentMessages))
	for i, m := range agentMessages {
		contents[i] = m.Content
	}

	instructions, err := util.RenderTemplate(synthesisTemplate, map[string]any{
		"AgentResults": strings.Join(contents, "\n\n"),
	})
	if err != nil {
		rc.LogError("agent.synthesize.template", "agent", a.Name(), "error", err.Error())
		return rc.Append(core.NewAssistantMessage(a.Name(), FallbackAnswer))
	}

	userMsg, ok := rc.Transcript.LastUser()
	if !ok {
		userMsg = core.NewUserMessage("Find me apartments")
	}

	messages := append([]core.Message{userMsg}, agentMessages...)

	answer, err := model.Text(rc.Context, a.llm, model.Request{
		Instructions: instructions,
		Messages:     messages,
	})
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			rc.LogWarn("agent.synthesize.failed", "agent", a.Name(), "error", err.Error())
		}
		return rc.Append(core.NewAssistantMessage(a.Name(), FallbackAnswer))
	}

	return rc.Append(core.NewAssistantMessage(a.Name(), answer))
}
