package search

// PageWindow is the fixed pagination window shown under the results.
// Total is configuration, not the catalog's reported page count.
type PageWindow struct {
	Current int
	Total   int
}

// Clamp bounds page to [1, Total]. A zero Total leaves the upper end open.
func (w PageWindow) Clamp(page int) int {
	if w.Total > 0 && page > w.Total {
		page = w.Total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// HasPrev reports whether a "Prev" control should be enabled.
func (w PageWindow) HasPrev() bool {
	return w.Current > 1
}

// HasNext reports whether a "Next" control should be enabled.
func (w PageWindow) HasNext() bool {
	return w.Total <= 0 || w.Current < w.Total
}

// Pages lists the page numbers 1..Total.
func (w PageWindow) Pages() []int {
	pages := make([]int, 0, w.Total)
	for i := 1; i <= w.Total; i++ {
		pages = append(pages, i)
	}
	return pages
}
