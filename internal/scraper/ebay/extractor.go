package ebay

import (
	"ShopScraper/internal/models"
	"ShopScraper/internal/scraper"
	"ShopScraper/pkg/config"
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Extractor turns a search results page into listings.
type Extractor struct {
	Selectors config.SelectorConfig
}

func NewExtractor(selectors config.SelectorConfig) *Extractor {
	return &Extractor{Selectors: selectors}
}

// Extract parses markup and returns one listing per (info, image wrapper) pair.
//
// The page keeps the text block and the image of a result in two separate
// containers, so the Nth info node is paired with the Nth image wrapper. When
// the two collections differ in length the extra nodes are ignored.
//
// Markup that cannot be parsed is reported as *scraper.ParseError rather than
// an empty result, so a failed page never replaces the stored listings.
func (e *Extractor) Extract(markup []byte) ([]models.Listing, error) {
	root, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return nil, &scraper.ParseError{Err: err}
	}
	doc := goquery.NewDocumentFromNode(root)

	infos := doc.Find(e.Selectors.Info)
	images := doc.Find(e.Selectors.ImageWrapper)

	n := infos.Length()
	if images.Length() < n {
		n = images.Length()
	}

	listings := make([]models.Listing, 0, n)
	for i := 0; i < n; i++ {
		info := infos.Eq(i)
		wrapper := images.Eq(i)

		l := models.NewListing()
		if title := info.Find(e.Selectors.Title).First(); title.Length() > 0 {
			l.Title = strings.TrimSpace(title.Text())
		}
		if link, ok := info.Find(e.Selectors.Link).First().Attr("href"); ok {
			l.Link = link
		}
		if price := info.Find(e.Selectors.Price).First(); price.Length() > 0 {
			l.Price = strings.TrimSpace(price.Text())
		}
		if src, ok := wrapper.Find(e.Selectors.Image).First().Attr("src"); ok {
			l.ImageURL = src
		}
		listings = append(listings, l)
	}
	return listings, nil
}
