package ebay

import (
	"ShopScraper/internal/models"
	"fmt"
	"strings"
)

// LeadingPolicy removes non-product rows that the results page places before
// the real listings (the "Shop on eBay" placeholder, result count banners).
type LeadingPolicy interface {
	Name() string
	Trim(listings []models.Listing) []models.Listing
}

// NoDrop keeps every extracted row.
type NoDrop struct{}

func (NoDrop) Name() string { return "none" }

func (NoDrop) Trim(listings []models.Listing) []models.Listing { return listings }

// DropFirst drops a fixed number of leading rows.
type DropFirst struct {
	N int
}

func (p DropFirst) Name() string { return fmt.Sprintf("fixed(%d)", p.N) }

func (p DropFirst) Trim(listings []models.Listing) []models.Listing {
	if p.N <= 0 {
		return listings
	}
	if p.N >= len(listings) {
		return listings[:0]
	}
	return listings[p.N:]
}

// placeholderTitles are titles eBay uses for rows that are not products.
var placeholderTitles = []string{
	"shop on ebay",
	"results matching fewer words",
}

// DropPlaceholders drops leading rows while they look like placeholders:
// a placeholder title, no link, or no price. It stops at the first real listing,
// so placeholder-looking rows further down are kept.
type DropPlaceholders struct{}

func (DropPlaceholders) Name() string { return "heuristic" }

func (DropPlaceholders) Trim(listings []models.Listing) []models.Listing {
	i := 0
	for i < len(listings) && isPlaceholder(listings[i]) {
		i++
	}
	return listings[i:]
}

func isPlaceholder(l models.Listing) bool {
	if l.Link == models.NotAvailable || l.Price == models.NotAvailable {
		return true
	}
	title := strings.ToLower(strings.TrimSpace(l.Title))
	for _, p := range placeholderTitles {
		if strings.HasPrefix(title, p) {
			return true
		}
	}
	return false
}

// PolicyByName builds the policy configured under ebay.leading_policy.
func PolicyByName(name string, dropLeading int) (LeadingPolicy, error) {
	switch name {
	case "", "heuristic":
		return DropPlaceholders{}, nil
	case "fixed":
		return DropFirst{N: dropLeading}, nil
	case "none":
		return NoDrop{}, nil
	default:
		return nil, fmt.Errorf("unknown leading policy %q", name)
	}
}
