package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/planner"
	"github.com/javiermolinar/timebox/internal/task"
)

// DaySummary describes one day of the grid.
type DaySummary struct {
	Date      time.Time
	Entries   []Entry
	Minutes   QuadrantMinutes
	FreeSlots int // slots neither past nor taken by a block
	Completed int // scheduled tasks already completed
}

// Day summarizes a planner day view.
func Day(view planner.DayView) *DaySummary {
	s := &DaySummary{
		Date:    view.Date,
		Minutes: QuadrantMinutes{},
	}
	for _, row := range view.Rows {
		if row.Block != nil {
			s.Entries = append(s.Entries, Entry{Block: row.Block, Task: row.Task})
			addMinutes(s.Minutes, row.Task, row.Block.DurationMinutes)
			if row.Task != nil && row.Task.Completed {
				s.Completed++
			}
			continue
		}
		if !row.Covered && !row.Past {
			s.FreeSlots++
		}
	}
	return s
}

// TotalMinutes returns the scheduled minutes of the day.
func (s *DaySummary) TotalMinutes() int {
	return s.Minutes.Total()
}

// Percent returns the share of scheduled tasks that are completed.
func (s *DaySummary) Percent() int {
	return percent(s.Completed, len(s.Entries))
}

// Text renders the summary as plain text.
func (s *DaySummary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", dateutil.Readable(s.Date), dateutil.Format(s.Date))

	if len(s.Entries) == 0 {
		b.WriteString("  nothing scheduled\n")
	}
	for _, e := range s.Entries {
		title, label, mark := "(deleted task)", "", " "
		if e.Task != nil {
			title = e.Task.Title
			label = e.Task.Quadrant.Label()
			if e.Task.Completed {
				mark = "x"
			}
		}
		fmt.Fprintf(&b, "  [%s] %s-%s  %-9s %s\n", mark, e.Block.StartTime, e.End(), label, title)
	}

	fmt.Fprintf(&b, "Scheduled: %s", task.FormatDuration(s.TotalMinutes()))
	if parts := quadrantBreakdown(s.Minutes); parts != "" {
		fmt.Fprintf(&b, " (%s)", parts)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Done: %d/%d (%d%%)\n", s.Completed, len(s.Entries), s.Percent())
	fmt.Fprintf(&b, "Free slots: %d\n", s.FreeSlots)
	return b.String()
}

func quadrantBreakdown(m QuadrantMinutes) string {
	var parts []string
	for _, q := range task.Quadrants() {
		if m[q] > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", q.Label(), task.FormatDuration(m[q])))
		}
	}
	return strings.Join(parts, ", ")
}
