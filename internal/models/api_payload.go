package models

// ListingsResponse is the JSON envelope returned by /api/listings.
type ListingsResponse struct {
	Data       []APIListing `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

type APIListing struct {
	Position   int     `json:"position"`
	Title      string  `json:"title"`
	Price      string  `json:"price"`
	PriceValue float64 `json:"price_value"` // lowest amount in Price, 0 when none
	PriceMax   float64 `json:"price_max"`   // upper end of a price range, PriceValue otherwise
	ImageURL   string  `json:"image_url"`
	Link       string  `json:"link"`
}

type Pagination struct {
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	CurrentPage int  `json:"current_page"`
	HasPrev     bool `json:"has_prev"`
	HasNext     bool `json:"has_next"`
}
