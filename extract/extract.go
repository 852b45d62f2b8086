// Package extract pulls the location and budget slots out of a free-form
// rental query using lightweight regex heuristics. Extraction never fails:
// missing slots fall back to fixed defaults.
package extract

import (
	"regexp"
	"strings"
)

const (
	// DefaultLocation is used when no location phrase is found.
	DefaultLocation = "San Francisco"
	// DefaultBudget is used when no budget amount is found.
	DefaultBudget = "$3000"
)

var (
	// First "in <letters and spaces>" phrase in the query.
	locationRe = regexp.MustCompile(`in\s+([A-Za-z\s]+)`)
	// Amount with optional $, thousands punctuation, k/thousand suffix and
	// "per month" tail, or a "budget is/of <amount>" phrase.
	budgetRe = regexp.MustCompile(`(\$?\d[\d,.]*)\s*(?:k|K|thousand)?(?:\s*per\s*month)?|(?:budget\s*(?:is|of)\s*(\$?\d[\d,.]*))(?:\s*per\s*month)?`)
)

// SlotSet holds the extracted query slots.
type SlotSet struct {
	Location string `json:"location"`
	Budget   string `json:"budget"`
}

// Slots extracts location and budget from the query text. The location is the
// first capture of the "in ..." phrase; the budget is the first capture of the
// amount alternation. Either slot falls back to its default when the regex
// does not match or captures an empty group.
func Slots(query string) SlotSet {
	return SlotSet{
		Location: Location(query),
		Budget:   Budget(query),
	}
}

// Location extracts the location slot, defaulting to DefaultLocation.
func Location(query string) string {
	m := locationRe.FindStringSubmatch(query)
	if m == nil {
		return DefaultLocation
	}
	loc := strings.TrimSpace(m[1])
	if loc == "" {
		return DefaultLocation
	}
	return loc
}

// Budget extracts the budget slot, defaulting to DefaultBudget. Only the
// first alternation group counts; a phrase matching solely the "budget is"
// branch leaves group one empty and falls back to the default.
func Budget(query string) string {
	m := budgetRe.FindStringSubmatch(query)
	if m == nil || m[1] == "" {
		return DefaultBudget
	}
	return m[1]
}
