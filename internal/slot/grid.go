// Package slot models the fixed daily time grid that blocks are placed on.
//
// A grid is fully determined by a start hour, an end hour and a slot
// interval. Labels run from startHour:00 through the last interval of
// endHour, e.g. 06:00 ... 23:45 for (6, 23, 15).
package slot

import (
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/task"
)

// Grid errors.
var (
	ErrInvalidSlot   = errors.New("time is not a slot on the grid")
	ErrInvalidConfig = errors.New("invalid grid configuration")
)

const (
	// DefaultStartHour is the first hour shown on the grid.
	DefaultStartHour = 6
	// DefaultEndHour is the last hour shown on the grid (inclusive).
	DefaultEndHour = 23
	// DefaultInterval is the slot length in minutes.
	DefaultInterval = 15
)

// Grid is an immutable ordered sequence of slot labels.
type Grid struct {
	startHour int
	endHour   int
	interval  int
	labels    []string
	index     map[string]int
}

// New builds a grid. startHour and endHour must be within 0..23 with
// startHour <= endHour; interval must divide an hour evenly.
func New(startHour, endHour, interval int) (*Grid, error) {
	if startHour < 0 || endHour > 23 || startHour > endHour {
		return nil, fmt.Errorf("%w: hours %d-%d", ErrInvalidConfig, startHour, endHour)
	}
	if interval <= 0 || 60%interval != 0 {
		return nil, fmt.Errorf("%w: interval %d must divide 60", ErrInvalidConfig, interval)
	}

	labels := GenerateSlots(startHour, endHour, interval)
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	return &Grid{
		startHour: startHour,
		endHour:   endHour,
		interval:  interval,
		labels:    labels,
		index:     index,
	}, nil
}

// Default returns the 06:00-23:45 grid with 15-minute slots.
func Default() *Grid {
	g, _ := New(DefaultStartHour, DefaultEndHour, DefaultInterval)
	return g
}

// GenerateSlots returns "HH:MM" labels from startHour:00 through the last
// interval of endHour. It has no side effects.
func GenerateSlots(startHour, endHour, interval int) []string {
	if interval <= 0 || startHour > endHour {
		return nil
	}
	slots := make([]string, 0, (endHour-startHour+1)*60/interval)
	for h := startHour; h <= endHour; h++ {
		for m := 0; m < 60; m += interval {
			slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return slots
}

// StartHour returns the first hour of the grid.
func (g *Grid) StartHour() int { return g.startHour }

// EndHour returns the last hour of the grid.
func (g *Grid) EndHour() int { return g.endHour }

// Interval returns the slot length in minutes.
func (g *Grid) Interval() int { return g.interval }

// Len returns the number of slots.
func (g *Grid) Len() int { return len(g.labels) }

// Labels returns a copy of the slot labels.
func (g *Grid) Labels() []string {
	out := make([]string, len(g.labels))
	copy(out, g.labels)
	return out
}

// Label returns the label at index i, or "" when out of range.
func (g *Grid) Label(i int) string {
	if i < 0 || i >= len(g.labels) {
		return ""
	}
	return g.labels[i]
}

// Index returns the position of label, or -1 if it is not a slot.
func (g *Grid) Index(label string) int {
	if i, ok := g.index[label]; ok {
		return i
	}
	return -1
}

// Contains reports whether label is one of the canonical slot labels.
func (g *Grid) Contains(label string) bool {
	_, ok := g.index[label]
	return ok
}

// Validate returns ErrInvalidSlot if label is not on the grid.
func (g *Grid) Validate(label string) error {
	if !g.Contains(label) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}
	return nil
}

// SlotsSpanned returns how many slots a duration covers, rounding up.
// A 20-minute block on a 15-minute grid spans 2 slots.
func (g *Grid) SlotsSpanned(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	return (durationMinutes + g.interval - 1) / g.interval
}

// Span returns the slot range [first, end) a block starting at label covers.
// The range is not clipped, so end may exceed Len() for blocks that run
// past the last slot.
func (g *Grid) Span(label string, durationMinutes int) (first, end int, err error) {
	first = g.Index(label)
	if first < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}
	return first, first + g.SlotsSpanned(durationMinutes), nil
}

// Overlaps reports whether two blocks share a date and at least one slot.
func (g *Grid) Overlaps(a, b *task.Block) bool {
	if a == nil || b == nil || !dateutil.SameDay(a.Date, b.Date) {
		return false
	}
	aFirst, aEnd, errA := g.Span(a.StartTime, a.DurationMinutes)
	bFirst, bEnd, errB := g.Span(b.StartTime, b.DurationMinutes)
	if errA != nil || errB != nil {
		return false
	}
	return task.TimesOverlap(aFirst, aEnd, bFirst, bEnd)
}

// Occupied returns the labels covered by, but not starting, a block on date.
// Start slots are left out so they stay addressable; spans are clipped to
// the end of the grid.
func (g *Grid) Occupied(blocks []*task.Block, date time.Time) map[string]bool {
	covered := make(map[string]bool)
	for _, b := range blocks {
		if b == nil || !b.OnDate(date) {
			continue
		}
		first, end, err := g.Span(b.StartTime, b.DurationMinutes)
		if err != nil {
			continue
		}
		for i := first + 1; i < end && i < len(g.labels); i++ {
			covered[g.labels[i]] = true
		}
	}
	return covered
}

// IsPast reports whether the slot at label on date has already begun:
// date is before today, or date is today and the slot's wall-clock time is
// at or before now. Dates are compared as calendar dates.
func IsPast(date time.Time, label string, now time.Time) bool {
	switch dateutil.Compare(date, now) {
	case -1:
		return true
	case 1:
		return false
	}
	mins := task.TimeToMinutes(label)
	slotTime := time.Date(now.Year(), now.Month(), now.Day(), mins/60, mins%60, 0, 0, now.Location())
	return !slotTime.After(now)
}

// FirstOpen returns the index of the first slot on date that is not past,
// or Len() if the whole day has elapsed.
func (g *Grid) FirstOpen(date, now time.Time) int {
	for i, l := range g.labels {
		if !IsPast(date, l, now) {
			return i
		}
	}
	return len(g.labels)
}
