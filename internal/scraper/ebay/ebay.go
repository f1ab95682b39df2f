package ebay

import (
	"ShopScraper/internal/models"
	"ShopScraper/internal/scraper"
	"ShopScraper/pkg/config"
	"context"
	"log"
	"net/url"
)

// EbayScraper fetches one eBay search results page and extracts its listings.
type EbayScraper struct {
	Fetcher   scraper.Fetcher
	Extractor *Extractor
	Leading   LeadingPolicy
	EbayConf  config.EbayConfig
}

// New wires a scraper from the eBay config section and a fetcher.
func New(fetcher scraper.Fetcher, ebayConf config.EbayConfig) (*EbayScraper, error) {
	leading, err := PolicyByName(ebayConf.LeadingPolicy, ebayConf.DropLeading)
	if err != nil {
		return nil, err
	}
	return &EbayScraper{
		Fetcher:   fetcher,
		Extractor: NewExtractor(ebayConf.Selectors),
		Leading:   leading,
		EbayConf:  ebayConf,
	}, nil
}

// SearchURL returns <search_url>?_nkw=<escaped term>.
func (s *EbayScraper) SearchURL(term string) string {
	return s.EbayConf.SearchURL + "?_nkw=" + url.QueryEscape(term)
}

// Search runs fetch and extraction for term. Errors are returned unchanged
// (*scraper.FetchError, *scraper.ParseError) so callers can classify them.
func (s *EbayScraper) Search(ctx context.Context, term string) ([]models.Listing, error) {
	target := s.SearchURL(term)
	log.Println("Constructed Target URL:", target)

	markup, err := s.Fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	raw, err := s.Extractor.Extract(markup)
	if err != nil {
		return nil, err
	}

	listings := s.Leading.Trim(raw)
	if dropped := len(raw) - len(listings); dropped > 0 {
		log.Printf("Leading policy %s dropped %d of %d rows", s.Leading.Name(), dropped, len(raw))
	}
	if len(listings) == 0 {
		log.Printf("WARN: no listings found for %q", term)
	}
	return listings, nil
}

var _ scraper.Scraper = (*EbayScraper)(nil)
