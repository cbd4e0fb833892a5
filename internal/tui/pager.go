package tui

import (
	"strconv"
	"strings"

	"github.com/h0rv/ghrs/internal/pagination"
)

const ellipsis = "…"

// renderPager draws the page bar for a computed window.
// Returns an empty string when everything fits on one page.
func renderPager(w pagination.Window, current int) string {
	if !w.Needed() {
		return ""
	}

	parts := make([]string, 0, len(w.Pages)+6)

	if w.HasPrev(current) {
		parts = append(parts, pageStyle.Render("← Prev"))
	} else {
		parts = append(parts, disabledPageStyle.Render("← Prev"))
	}

	if w.ShowFirstPage {
		parts = append(parts, pageStyle.Render("1"))
	}
	if w.ShowLeadEllipsis {
		parts = append(parts, dimStyle.Render(ellipsis))
	}

	for _, p := range w.Pages {
		label := strconv.Itoa(p)
		if p == current {
			parts = append(parts, activePageStyle.Render(label))
		} else {
			parts = append(parts, pageStyle.Render(label))
		}
	}

	if w.ShowTrailEllipsis {
		parts = append(parts, dimStyle.Render(ellipsis))
	}
	if w.ShowLastPage {
		parts = append(parts, pageStyle.Render(strconv.Itoa(w.TotalPages)))
	}

	if w.HasNext(current) {
		parts = append(parts, pageStyle.Render("Next →"))
	} else {
		parts = append(parts, disabledPageStyle.Render("Next →"))
	}

	return strings.Join(parts, " ")
}
