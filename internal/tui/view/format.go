package view

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Truncate cuts s to width terminal cells, marking the cut with an
// ellipsis. ANSI sequences in s are preserved.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width terminal cells, truncating when it
// is wider.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// ProgressBar renders done/total as a bar of width cells.
func ProgressBar(done, total, width int) (filled, empty string) {
	if width <= 0 {
		return "", ""
	}
	n := 0
	if total > 0 {
		n = min(done*width/total, width)
	}
	return strings.Repeat("█", n), strings.Repeat("░", width-n)
}
