package task

import (
	"time"

	"github.com/javiermolinar/timebox/internal/dateutil"
)

// Block places one task on a date at a slot-aligned start time.
// DurationMinutes is copied from the task when the block is created and is
// not updated if the task changes later.
type Block struct {
	ID              string
	TaskID          string
	Date            time.Time // calendar date, local midnight
	StartTime       string    // "HH:MM", one of the grid slot labels
	DurationMinutes int
}

// OnDate returns true if the block is placed on the calendar date of d.
func (b *Block) OnDate(d time.Time) bool {
	return dateutil.SameDay(b.Date, d)
}

// DateKey returns the block date as YYYY-MM-DD.
func (b *Block) DateKey() string {
	return dateutil.Format(b.Date)
}

// EndTime returns the wall-clock end of the block ("HH:MM").
func (b *Block) EndTime() string {
	return MinutesToTime(TimeToMinutes(b.StartTime) + b.DurationMinutes)
}

// Clone returns a copy of the block.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}
