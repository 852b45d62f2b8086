package agent

import (
	"fmt"
	"strings"

	"github.com/hupe1980/estatemesh/core"
	"github.com/hupe1980/estatemesh/extract"
	"github.com/hupe1980/estatemesh/search"
)

// SpecialistOptions configure a search-backed specialist.
type SpecialistOptions struct {
	MaxResults int
}

// Specialist is a search-backed handler producing one labeled narrative per
// run. The concrete specialists differ only in their query template, intro
// line, fallback narrative and optional trailer; the mechanics (slot
// extraction, search, normalization, message append) are shared.
//
// Slots are always re-derived from the original user query carried on the
// RunContext, never from intermediate agent narratives.
type Specialist struct {
	BaseAgent
	provider search.Provider
	opts     SpecialistOptions

	query    func(s extract.SlotSet) string
	intro    func(s extract.SlotSet) string
	fallback func(s extract.SlotSet) string
	trailer  func(s extract.SlotSet) string // optional, appended after the narrative
}

// Run implements core.Agent. A failing search call never propagates: the
// specialist appends its canned fallback narrative instead.
func (a *Specialist) Run(rc *core.RunContext) error {
	slots := extract.Slots(rc.Query)
	query := a.query(slots)

	rc.LogInfo("agent.search", "agent", a.Name(), "query", query)

	payload, err := a.provider.Search(rc.Context, query, a.opts.MaxResults)
	if err != nil {
		rc.LogWarn("agent.search.failed", "agent", a.Name(), "error", err.Error())
		return rc.Append(core.NewAssistantMessage(a.Name(), a.fallback(slots)))
	}

	result := search.Normalize(payload)
	rc.LogDebug("agent.search.normalized", "agent", a.Name(), "kind", result.Kind.String(), "sources", len(result.Sources))

	var sb strings.Builder
	sb.WriteString(a.intro(slots))
	sb.WriteString(result.Narrative)
	if a.trailer != nil {
		sb.WriteString(a.trailer(slots))
	}

	return rc.Append(core.NewAssistantMessage(a.Name(), sb.String()))
}

// NewNeighborhoodAgent creates the specialist evaluating neighborhoods for
// the extracted location.
func NewNeighborhoodAgent(provider search.Provider, optFns ...func(o *SpecialistOptions)) *Specialist {
	opts := SpecialistOptions{MaxResults: 5}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Specialist{
		BaseAgent: NewBaseAgent("NeighborhoodAgent", "Evaluates neighborhoods based on search results"),
		provider:  provider,
		opts:      opts,
		query: func(s extract.SlotSet) string {
			return fmt.Sprintf("Best neighborhoods in %s for families, safety, and amenities", s.Location)
		},
		intro: func(s extract.SlotSet) string {
			return fmt.Sprintf("Neighborhood Agent: Based on my search, I found the following about neighborhoods in %s:", s.Location)
		},
		fallback: func(s extract.SlotSet) string {
			return fmt.Sprintf("Neighborhood Agent: I couldn't retrieve specific information about %s neighborhoods. However, generally speaking, when evaluating neighborhoods, consider factors like crime rates, school quality, proximity to amenities, and transportation options.", s.Location)
		},
	}
}

// NewPropertyAgent creates the specialist searching for apartment listings
// within the extracted location and budget.
func NewPropertyAgent(provider search.Provider, optFns ...func(o *SpecialistOptions)) *Specialist {
	opts := SpecialistOptions{MaxResults: 5}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Specialist{
		BaseAgent: NewBaseAgent("PropertyAgent", "Searches for listings matching the user criteria"),
		provider:  provider,
		opts:      opts,
		query:     listingQuery,
		intro: func(s extract.SlotSet) string {
			return fmt.Sprintf("Property Agent: Here are some property listings I found in %s:", s.Location)
		},
		fallback: PropertyFallback,
	}
}

// NewPriceAgent creates the specialist analyzing rental prices against the
// extracted budget. It issues the same listing query as the property agent
// and appends a budget commentary to the narrative.
func NewPriceAgent(provider search.Provider, optFns ...func(o *SpecialistOptions)) *Specialist {
	opts := SpecialistOptions{MaxResults: 5}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Specialist{
		BaseAgent: NewBaseAgent("PriceAgent", "Analyzes pricing information from listings"),
		provider:  provider,
		opts:      opts,
		query:     listingQuery,
		intro: func(s extract.SlotSet) string {
			return fmt.Sprintf("Price Agent: After analyzing rental prices in %s under %s, here's what I found:", s.Location, s.Budget)
		},
		trailer: func(s extract.SlotSet) string {
			verdict := "may require comparing with"
			if strings.Contains(s.Budget, "$") {
				verdict = "seem to be within"
			}
			return fmt.Sprintf("\n\nBased on these results, apartments in %s generally %s your budget of %s per month. Remember to factor in additional costs like utilities, parking, pet fees, and security deposits.", s.Location, verdict, s.Budget)
		},
		fallback: func(s extract.SlotSet) string {
			return fmt.Sprintf("Price Agent: I couldn't retrieve specific pricing information for %s. With a budget of %s, consider that SF Bay Area apartments typically range from $2,000-$4,000+ for one-bedrooms depending on location and amenities. Always check for additional costs beyond rent.", s.Location, s.Budget)
		},
	}
}

// listingQuery is the shared search query for the property and price agents.
func listingQuery(s extract.SlotSet) string {
	return fmt.Sprintf("Apartment listings in %s under %s per month", s.Location, s.Budget)
}

// PropertyFallback is the canned narrative used when the property listing
// search fails. Exported so callers can assert degraded output.
func PropertyFallback(s extract.SlotSet) string {
	return fmt.Sprintf("Property Agent: I couldn't retrieve current property listings for %s. To find apartments in your budget range, I recommend checking popular real estate websites like Zillow, Apartments.com, or Redfin, which typically have extensive listings with detailed information.", s.Location)
}
