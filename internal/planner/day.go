package planner

import (
	"time"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/slot"
	"github.com/javiermolinar/timebox/internal/task"
)

// Row is one slot of a rendered day.
type Row struct {
	Label string
	// Block starts at this slot; nil otherwise.
	Block *task.Block
	// Task of Block; nil when no block starts here or its task is gone.
	Task *task.Task
	// Span is the number of grid slots Block covers, clipped to the grid.
	Span int
	// Covered marks a slot inside a block that started earlier.
	Covered bool
	Past    bool
}

// DayView is the slot grid for one date.
type DayView struct {
	Date    time.Time
	IsToday bool
	Rows    []Row
	// Focus is the row the grid should open at.
	Focus int
	// ScheduledMinutes sums the durations of the day's blocks.
	ScheduledMinutes int
}

// Day builds the view of date: one row per slot, blocks attached at their
// start slot and the slots they cover flagged.
func (p *Planner) Day(date time.Time) DayView {
	date = dateutil.TruncateToDay(date)
	now := p.clock.Now()
	blocks := p.blocks.ListForDate(date)
	covered := p.grid.Occupied(blocks, date)

	starts := make(map[string]*task.Block, len(blocks))
	view := DayView{
		Date:    date,
		IsToday: dateutil.SameDay(date, now),
		Rows:    make([]Row, p.grid.Len()),
		Focus:   scheduler.FocusSlot(p.grid, date, now),
	}
	for _, b := range blocks {
		starts[b.StartTime] = b
		view.ScheduledMinutes += b.DurationMinutes
	}

	for i, label := range p.grid.Labels() {
		row := Row{
			Label:   label,
			Covered: covered[label],
			Past:    slot.IsPast(date, label, now),
		}
		if b, ok := starts[label]; ok {
			row.Block = b
			row.Span = min(p.grid.SlotsSpanned(b.DurationMinutes), p.grid.Len()-i)
			if t, err := p.tasks.Get(b.TaskID); err == nil {
				row.Task = t
			}
		}
		view.Rows[i] = row
	}
	return view
}
