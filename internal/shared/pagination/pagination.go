// Package pagination slices ordered result sets into fixed-size pages.
// Out-of-range page numbers clamp to the nearest valid page; they never error.
package pagination

// PageSize is the fixed number of items per page on every listing.
const PageSize = 10

// Page describes one slice of a result set.
type Page struct {
	Number      int `json:"page"`
	Size        int `json:"limit"`
	TotalItems  int `json:"total"`
	TotalPages  int `json:"total_pages"`
	HasNext     bool
	HasPrevious bool
}

// New computes the page for a requested number over totalItems items.
// Requested numbers below 1 clamp to the first page, numbers past the end
// clamp to the last. An empty set still has one (empty) page.
func New(requested, totalItems int) Page {
	totalPages := (totalItems + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:      number,
		Size:        PageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}
}

// Offset is the number of items to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit is the maximum number of items on this page.
func (p Page) Limit() int {
	return p.Size
}
