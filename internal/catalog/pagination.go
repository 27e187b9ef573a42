// internal/catalog/pagination.go
package catalog

// Pager computes page navigation bounds for a listing.
type Pager struct {
	Total int
	Limit int
}

// TotalPages is ceil(Total / Limit). Zero when there is nothing to page.
func (p Pager) TotalPages() int {
	if p.Limit <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// Clamp forces page into [1, TotalPages]. An empty listing clamps to 1.
func (p Pager) Clamp(page int) int {
	if page < 1 {
		return 1
	}
	if tp := p.TotalPages(); tp > 0 && page > tp {
		return tp
	}
	return page
}
