package models

// NotAvailable is stored in place of any field the extractor could not find.
const NotAvailable = "N/A"

// Listing holds the data extracted for a single search result.
// Link is the natural identity of a row inside one batch but is not enforced.
type Listing struct {
	Link     string `db:"link" json:"link"`
	Title    string `db:"title" json:"title"`
	Price    string `db:"price" json:"price"`
	ImageURL string `db:"img" json:"image_url"`
}

// NewListing returns a Listing with every field set to NotAvailable.
func NewListing() Listing {
	return Listing{
		Link:     NotAvailable,
		Title:    NotAvailable,
		Price:    NotAvailable,
		ImageURL: NotAvailable,
	}
}

// PageView is one page of listings as handed to the display layer.
// It is recomputed on every request and never persisted.
type PageView struct {
	Listings   []Listing `json:"listings"`
	PageNumber int       `json:"page_number"`
	TotalPages int       `json:"total_pages"`
	HasPrev    bool      `json:"has_prev"`
	HasNext    bool      `json:"has_next"`
}
