// Package serp abstracts web search providers used for source discovery.
package serp

import "context"

// Result is a single search hit.
type Result struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Provider abstracts a search engine that returns results for a query.
// Implementations may use scraping or official APIs. limit caps the number
// of results returned.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}
