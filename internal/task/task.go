// Package task defines the core domain types for timebox.
package task

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrInvalidQuadrant   = errors.New("quadrant must be one of DO, SCHEDULE, DELEGATE, DELETE")
	ErrInvalidDuration   = errors.New("duration must be a positive number of minutes within one day")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
)

// Domain errors.
var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrBlockNotFound  = errors.New("time block not found")
	ErrDuplicateBlock = errors.New("task is already scheduled on this date")
	ErrOverlap        = errors.New("time block overlaps with existing block")
	ErrPastBlock      = errors.New("time block is in the past and locked")
)

// MinutesPerDay bounds task durations.
const MinutesPerDay = 24 * 60

// Task is a unit of work classified into a quadrant.
type Task struct {
	ID              string
	Title           string
	Quadrant        Quadrant
	Completed       bool
	DurationMinutes int // estimated length, copied into blocks at placement
	CreatedAt       time.Time
}

// New creates a Task with validation. The ID is assigned by the store.
// The title is trimmed; a blank title returns ErrEmptyTitle.
func New(title string, quadrant Quadrant, durationMinutes int, now time.Time) (*Task, error) {
	t := &Task{
		Title:           strings.TrimSpace(title),
		Quadrant:        quadrant,
		DurationMinutes: durationMinutes,
		CreatedAt:       now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the user-supplied fields of the task.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Quadrant.Valid() {
		return ErrInvalidQuadrant
	}
	if t.DurationMinutes <= 0 || t.DurationMinutes > MinutesPerDay {
		return ErrInvalidDuration
	}
	return nil
}

// Clone returns a copy that can be handed out without sharing state.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// IsUrgent returns true for the quadrants marked urgent (DO, DELEGATE).
func (t *Task) IsUrgent() bool {
	return t.Quadrant == QuadrantDo || t.Quadrant == QuadrantDelegate
}

// IsImportant returns true for the quadrants marked important (DO, SCHEDULE).
func (t *Task) IsImportant() bool {
	return t.Quadrant == QuadrantDo || t.Quadrant == QuadrantSchedule
}
