package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/task"
)

// DayTotal is one day of a week summary.
type DayTotal struct {
	Date    time.Time
	Blocks  int
	Minutes int
}

// WeekSummary aggregates the ISO week (Monday to Sunday) around a date.
type WeekSummary struct {
	Start   time.Time
	End     time.Time
	Days    [7]DayTotal
	Minutes QuadrantMinutes
}

// Week summarizes the week containing ref from all blocks and tasks.
// Blocks outside the week are ignored.
func Week(ref time.Time, blocks []*task.Block, tasks []*task.Task) *WeekSummary {
	start, end := dateutil.WeekRange(ref)
	s := &WeekSummary{
		Start:   start,
		End:     end,
		Minutes: QuadrantMinutes{},
	}
	for i := range s.Days {
		s.Days[i].Date = start.AddDate(0, 0, i)
	}

	byID := indexTasks(tasks)
	for _, b := range blocks {
		for i := range s.Days {
			if !dateutil.SameDay(b.Date, s.Days[i].Date) {
				continue
			}
			s.Days[i].Blocks++
			s.Days[i].Minutes += b.DurationMinutes
			addMinutes(s.Minutes, byID[b.TaskID], b.DurationMinutes)
			break
		}
	}
	return s
}

// TotalMinutes returns all scheduled minutes in the week.
func (s *WeekSummary) TotalMinutes() int {
	total := 0
	for _, d := range s.Days {
		total += d.Minutes
	}
	return total
}

// BusiestDay returns the index (0 = Monday) of the day with most scheduled
// minutes and its minutes. Ties go to the earlier day.
func (s *WeekSummary) BusiestDay() (index, minutes int) {
	for i, d := range s.Days {
		if d.Minutes > minutes {
			index, minutes = i, d.Minutes
		}
	}
	return index, minutes
}

// ImportantPercent returns the share of scheduled time spent on the
// important quadrants (DO and SCHEDULE).
func (s *WeekSummary) ImportantPercent() int {
	important := s.Minutes[task.QuadrantDo] + s.Minutes[task.QuadrantSchedule]
	return percent(important, s.Minutes.Total())
}

// Text renders the summary as plain text.
func (s *WeekSummary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Week of %s to %s\n", dateutil.Format(s.Start), dateutil.Format(s.End))
	for _, d := range s.Days {
		fmt.Fprintf(&b, "  %-3s %s  %2d blocks  %s\n",
			d.Date.Format("Mon"), dateutil.Format(d.Date), d.Blocks, task.FormatDuration(d.Minutes))
	}
	fmt.Fprintf(&b, "Scheduled: %s", task.FormatDuration(s.TotalMinutes()))
	if parts := quadrantBreakdown(s.Minutes); parts != "" {
		fmt.Fprintf(&b, " (%s)", parts)
	}
	b.WriteString("\n")
	if total := s.TotalMinutes(); total > 0 {
		fmt.Fprintf(&b, "Important work: %d%%\n", s.ImportantPercent())
	}
	return b.String()
}
