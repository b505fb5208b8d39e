// Package scheduler owns the select-task then pick-slot interaction and
// the time-aware helpers around it.
package scheduler

import (
	"time"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/slot"
	"github.com/javiermolinar/timebox/internal/task"
)

// DefaultFocusTime is where the cursor lands on days other than today.
const DefaultFocusTime = "08:00"

// FocusSlot returns the slot index the grid should open at for date.
// Today opens at the current hour; any other day opens at 08:00. The
// result is clamped into the grid.
func FocusSlot(g *slot.Grid, date, now time.Time) int {
	target := task.TimeToMinutes(DefaultFocusTime)
	if dateutil.SameDay(date, now) {
		target = now.Hour() * 60
	}
	return clampToGrid(g, target)
}

// FreeSlot returns the first slot on date that has not started and where a
// block of durationMinutes fits without overlapping blocks. ok is false when
// no such slot is left.
func FreeSlot(g *slot.Grid, blocks []*task.Block, date, now time.Time, durationMinutes int) (label string, ok bool) {
	for i := g.FirstOpen(date, now); i < g.Len(); i++ {
		candidate := &task.Block{Date: date, StartTime: g.Label(i), DurationMinutes: durationMinutes}
		if !overlapsAny(g, candidate, blocks) {
			return candidate.StartTime, true
		}
	}
	return "", false
}

func overlapsAny(g *slot.Grid, b *task.Block, blocks []*task.Block) bool {
	for _, other := range blocks {
		if g.Overlaps(b, other) {
			return true
		}
	}
	return false
}

func clampToGrid(g *slot.Grid, minutes int) int {
	if g.Len() == 0 {
		return 0
	}
	first := task.TimeToMinutes(g.Label(0))
	idx := (minutes - first) / g.Interval()
	if minutes < first {
		idx = 0
	}
	return min(max(idx, 0), g.Len()-1)
}
