// Package pagination computes the bounded sliding window of page numbers
// shown under a result list.
package pagination

// DefaultWindowSize is the number of numbered page buttons shown at once.
const DefaultWindowSize = 5

// Window describes which page controls to display.
type Window struct {
	TotalPages        int
	Pages             []int // Consecutive page numbers, ascending
	ShowFirstPage     bool  // Shortcut to page 1 outside the window
	ShowLeadEllipsis  bool  // Gap between page 1 and the window
	ShowLastPage      bool  // Shortcut to the last page outside the window
	ShowTrailEllipsis bool  // Gap between the window and the last page
}

// Needed reports whether any pagination controls should be shown.
func (w Window) Needed() bool {
	return w.TotalPages > 1
}

// HasPrev reports whether a previous page exists.
func (w Window) HasPrev(page int) bool {
	return page > 1
}

// HasNext reports whether a next page exists.
func (w Window) HasNext(page int) bool {
	return page < w.TotalPages
}

// TotalPages returns the number of pages reachable for totalCount matches,
// never less than 1. Matches beyond resultsCap are not reachable.
func TotalPages(totalCount, pageSize, resultsCap int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	if resultsCap < 1 {
		resultsCap = 1
	}
	effective := min(max(totalCount, 0), resultsCap)
	pages := (effective + pageSize - 1) / pageSize
	return max(1, pages)
}

// Compute returns the page window centred on currentPage.
// windowSize is expected to be odd; an even size biases the window forward.
func Compute(totalCount, pageSize, currentPage, windowSize, resultsCap int) Window {
	if windowSize < 1 {
		windowSize = 1
	}
	totalPages := TotalPages(totalCount, pageSize, resultsCap)
	half := windowSize / 2

	start := clamp(currentPage-half, 1, max(1, totalPages-windowSize+1))
	end := clamp(start+windowSize-1, 1, totalPages)

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	return Window{
		TotalPages:        totalPages,
		Pages:             pages,
		ShowFirstPage:     start > 1,
		ShowLeadEllipsis:  start > 2,
		ShowLastPage:      end < totalPages,
		ShowTrailEllipsis: end < totalPages-1,
	}
}

func clamp(n, lo, hi int) int {
	return max(lo, min(hi, n))
}
