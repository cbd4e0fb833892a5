package tui

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var countPrinter = message.NewPrinter(language.English)

// formatCount renders n with thousands separators (230000 -> "230,000").
func formatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// formatUpdated renders a timestamp relative to now ("3 days ago").
func formatUpdated(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.Time(t)
}

// truncateText shortens s to width cells, ending with an ellipsis when cut.
func truncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
