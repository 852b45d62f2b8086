// Package tavily implements search.Provider against the Tavily search API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hupe1980/estatemesh/search"
)

const defaultBaseURL = "https://api.tavily.com/search"

// request is the Tavily search request body.
type request struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
}

// Options configure the Tavily client.
type Options struct {
	BaseURL       string
	SearchDepth   string // "basic" or "advanced"
	IncludeAnswer bool
	HTTPClient    *http.Client
}

// Client is a thin HTTP client for the Tavily search API. It returns the
// decoded response payload untyped so the search normalizer owns all shape
// handling.
type Client struct {
	apiKey string
	opts   Options
}

var _ search.Provider = (*Client)(nil)

// New creates a Tavily client with the given API key.
func New(apiKey string, optFns ...func(o *Options)) *Client {
	opts := Options{
		BaseURL:       defaultBaseURL,
		SearchDepth:   "basic",
		IncludeAnswer: true,
		HTTPClient:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{apiKey: apiKey, opts: opts}
}

// Search implements search.Provider. Any transport or API failure is returned
// as an error for the caller to absorb into its fallback path.
func (c *Client) Search(ctx context.Context, query string, maxResults int) (any, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("tavily: api key not configured")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	body, err := json.Marshal(request{
		APIKey:        c.apiKey,
		Query:         query,
		SearchDepth:   c.opts.SearchDepth,
		MaxResults:    maxResults,
		IncludeAnswer: c.opts.IncludeAnswer,
	})
	if err != nil {
		return nil, fmt.Errorf("tavily: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tavily: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily: search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tavily: unexpected status %d: %s", resp.StatusCode, snippet)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("tavily: decode response: %w", err)
	}
	return payload, nil
}
