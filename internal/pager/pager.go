package pager

// DefaultPageSize is the number of listings shown per page.
const DefaultPageSize = 4

// Page describes the bounds of one page inside a result set of a known size.
// Start and End are slice indexes: records[Start:End].
type Page struct {
	Number     int
	TotalPages int
	Start      int
	End        int
	HasPrev    bool
	HasNext    bool
}

// TotalPages returns max(ceil(total/pageSize), 1).
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Clamp forces page into [1, totalPages].
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate computes the page bounds for the requested page. The requested page is
// clamped first, so an empty result set is page 1 of 1 with Start == End == 0.
// A pageSize below 1 falls back to DefaultPageSize.
func Paginate(total, pageSize, requested int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	totalPages := TotalPages(total, pageSize)
	number := Clamp(requested, totalPages)

	start := (number - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page{
		Number:     number,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
		HasPrev:    number > 1,
		HasNext:    number < totalPages,
	}
}
