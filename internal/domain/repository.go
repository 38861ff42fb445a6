package domain

import "context"

// ProductSource defines the interface for fetching product listings for a
// category. Implementations reduce their own failures to an empty slice:
// a scrape that finds nothing and a scrape that breaks look the same to
// the caller.
type ProductSource interface {
	Scrape(ctx context.Context, category string) ([]Product, error)
}

// TextGenerator defines the interface for the external text-generation
// service. The recommendation service depends on this abstraction, not on
// a concrete API client, so tests can substitute a deterministic double.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error)
}
