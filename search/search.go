// Package search defines the web search provider contract and the result
// normalizer that converts the several payload shapes a provider may return
// into a single narrative with preserved source URLs.
package search

import "context"

// Provider executes a web search and returns the provider-shaped payload as
// decoded JSON (maps, slices, strings). Shape handling is deliberately left
// to Normalize so providers stay thin.
type Provider interface {
	Search(ctx context.Context, query string, maxResults int) (any, error)
}

// Source is a single (content, url) pair recovered from a search payload.
type Source struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Result is the normalized outcome of a search call. Narrative is always
// non-empty for a non-nil payload and embeds every recovered source URL.
type Result struct {
	Kind      PayloadKind `json:"kind"`
	Narrative string      `json:"narrative"`
	Sources   []Source    `json:"sources,omitempty"`
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(ctx context.Context, query string, maxResults int) (any, error)

// Search implements Provider.
func (f ProviderFunc) Search(ctx context.Context, query string, maxResults int) (any, error) {
	return f(ctx, query, maxResults)
}
