package ui

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/javiermolinar/timebox/internal/summary"
	"github.com/javiermolinar/timebox/internal/task"
)

// shortIDLen is how many id characters the CLI prints.
const shortIDLen = 8

// shortID abbreviates an id for display. Any unique prefix is accepted
// back as input.
func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// statusSymbol returns the completion indicator for a task.
func statusSymbol(t *task.Task) string {
	if t.Completed {
		return "✓"
	}
	return "○"
}

// quadrantTag renders the short colored quadrant column.
func quadrantTag(q task.Quadrant) string {
	return formatQuadrant(q, fmt.Sprintf("%-9s", q.Label()))
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if width <= 3 || utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

// descWidth is the room left for titles after the fixed columns.
func descWidth(overhead, minimum int) int {
	if w := termWidth() - overhead; w > minimum {
		return w
	}
	return minimum
}

// ProgressBar renders done/total as a bar of the given width.
func ProgressBar(done, total, width int) string {
	if total == 0 {
		return "[" + strings.Repeat("░", width) + "] (0% done)"
	}

	pct := (done*100 + total/2) / total
	filled := (done * width) / total

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s", formatStats(bar), formatStats(fmt.Sprintf("(%d%% done)", pct)))
}

// printTaskRow prints one backlog line.
func printTaskRow(w io.Writer, t *task.Task, scheduledToday bool, width int) {
	marker := " "
	if scheduledToday {
		marker = "•"
	}
	title := truncate(t.Title, width)
	if t.Completed {
		title = formatMuted(title)
	}
	fmt.Fprintf(w, "  %s %s  %s  %s  %-5s %s\n",
		statusSymbol(t),
		formatMuted(shortID(t.ID)),
		quadrantTag(t.Quadrant),
		marker,
		task.FormatDuration(t.DurationMinutes),
		title,
	)
}

// printDay prints a day summary with colored entries.
func printDay(w io.Writer, s *summary.DaySummary, width int) {
	fmt.Fprintf(w, "\n  %s\n", formatHeader(s.Date.Format("Monday, January 2, 2006")))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	if len(s.Entries) == 0 {
		fmt.Fprintln(w, formatMuted("  Nothing scheduled."))
	}
	for _, e := range s.Entries {
		title, q, sym := "(deleted task)", task.QuadrantDelete, "○"
		if e.Task != nil {
			title, q, sym = e.Task.Title, e.Task.Quadrant, statusSymbol(e.Task)
		}
		fmt.Fprintf(w, "  %s %s-%s  %s  %s  %s\n",
			sym,
			e.Block.StartTime,
			e.End(),
			quadrantTag(q),
			truncate(title, width),
			formatMuted(shortID(e.Block.ID)),
		)
	}

	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "  Scheduled: %s\n", formatStats(task.FormatDuration(s.TotalMinutes())))
	for _, q := range task.Quadrants() {
		if m := s.Minutes[q]; m > 0 {
			fmt.Fprintf(w, "    %s %s\n", quadrantTag(q), task.FormatDuration(m))
		}
	}
	fmt.Fprintf(w, "  Free slots: %d\n", s.FreeSlots)
	fmt.Fprintf(w, "  Progress: %s\n", ProgressBar(s.Completed, len(s.Entries), 20))
}

// printWeek prints a week summary table.
func printWeek(w io.Writer, s *summary.WeekSummary, today time.Time) {
	header := fmt.Sprintf("WEEK: %s - %s", s.Start.Format("Mon Jan 2"), s.End.Format("Mon Jan 2, 2006"))
	fmt.Fprintf(w, "\n  %s\n", formatHeader(header))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	_, busiest := s.BusiestDay()
	for _, d := range s.Days {
		marker := " "
		if d.Date.Equal(today) {
			marker = "▸"
		}
		bar := ""
		if busiest > 0 {
			bar = strings.Repeat("▇", (d.Minutes*20)/busiest)
		}
		fmt.Fprintf(w, " %s %-10s %2d blocks  %6s  %s\n",
			marker, d.Date.Format("Mon Jan 2"), d.Blocks,
			task.FormatDuration(d.Minutes), formatStats(bar))
	}

	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "  Scheduled: %s\n", formatStats(task.FormatDuration(s.TotalMinutes())))
	for _, q := range task.Quadrants() {
		if m := s.Minutes[q]; m > 0 {
			fmt.Fprintf(w, "    %s %s\n", quadrantTag(q), task.FormatDuration(m))
		}
	}
	if s.TotalMinutes() > 0 {
		fmt.Fprintf(w, "  Important work: %s\n", formatStats(fmt.Sprintf("%d%%", s.ImportantPercent())))
	}
}
