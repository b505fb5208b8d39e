package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/timebox/internal/task"
)

// Color definitions for consistent styling across the UI.
var (
	// Quadrants: urgency in warm colors, importance in bold.
	colorDo       = color.New(color.FgRed, color.Bold)
	colorSchedule = color.New(color.FgBlue, color.Bold)
	colorDelegate = color.New(color.FgYellow)
	colorDelete   = color.New(color.FgWhite, color.Faint)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Stats: green for positive metrics
	colorStats = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Warnings: placements that did not happen
	colorWarn = color.New(color.FgYellow)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatQuadrant colors s with the quadrant's color.
func formatQuadrant(q task.Quadrant, s string) string {
	switch q {
	case task.QuadrantDo:
		return colorDo.Sprint(s)
	case task.QuadrantSchedule:
		return colorSchedule.Sprint(s)
	case task.QuadrantDelegate:
		return colorDelegate.Sprint(s)
	default:
		return colorDelete.Sprint(s)
	}
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatWarn formats text as a warning.
func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}
