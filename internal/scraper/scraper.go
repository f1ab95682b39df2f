package scraper

import (
	"ShopScraper/internal/models"
	"context"
)

// Fetcher downloads the raw markup of a single page.
type Fetcher interface {
	// Fetch performs one GET and returns the response body. Failures are
	// reported as *FetchError.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Scraper defines the basic behavior for all website scrapers.
type Scraper interface {
	// SearchURL builds the results page URL for a search term.
	SearchURL(term string) string

	// Search fetches the results page for term and extracts its listings
	// in document order.
	Search(ctx context.Context, term string) ([]models.Listing, error)
}
