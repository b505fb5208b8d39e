package task

import (
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local)

	t.Run("valid task", func(t *testing.T) {
		tk, err := New("  Write report  ", QuadrantDo, 30, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tk.Title != "Write report" {
			t.Errorf("got title %q, want %q", tk.Title, "Write report")
		}
		if tk.Quadrant != QuadrantDo {
			t.Errorf("got quadrant %q, want %q", tk.Quadrant, QuadrantDo)
		}
		if tk.Completed {
			t.Error("expected new task to be incomplete")
		}
		if tk.DurationMinutes != 30 {
			t.Errorf("got duration %d, want 30", tk.DurationMinutes)
		}
		if !tk.CreatedAt.Equal(now) {
			t.Errorf("got CreatedAt %v, want %v", tk.CreatedAt, now)
		}
	})

	t.Run("odd duration is accepted", func(t *testing.T) {
		if _, err := New("Stretch", QuadrantDelegate, 20, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestNew_Errors(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		title    string
		quadrant Quadrant
		duration int
		wantErr  error
	}{
		{name: "empty title", title: "", quadrant: QuadrantDo, duration: 30, wantErr: ErrEmptyTitle},
		{name: "whitespace title", title: " \t\n", quadrant: QuadrantDo, duration: 30, wantErr: ErrEmptyTitle},
		{name: "invalid quadrant", title: "Test", quadrant: "URGENT", duration: 30, wantErr: ErrInvalidQuadrant},
		{name: "zero duration", title: "Test", quadrant: QuadrantDo, duration: 0, wantErr: ErrInvalidDuration},
		{name: "negative duration", title: "Test", quadrant: QuadrantDo, duration: -15, wantErr: ErrInvalidDuration},
		{name: "longer than a day", title: "Test", quadrant: QuadrantDo, duration: MinutesPerDay + 15, wantErr: ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.title, tt.quadrant, tt.duration, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskClone(t *testing.T) {
	orig := &Task{ID: "a", Title: "Original", Quadrant: QuadrantDo}
	c := orig.Clone()
	c.Title = "Changed"
	if orig.Title != "Original" {
		t.Errorf("clone shares state with original: %q", orig.Title)
	}
	if (*Task)(nil).Clone() != nil {
		t.Error("expected nil clone of nil task")
	}
}

func TestImportanceAndUrgency(t *testing.T) {
	tests := []struct {
		q         Quadrant
		important bool
		urgent    bool
	}{
		{QuadrantDo, true, true},
		{QuadrantSchedule, true, false},
		{QuadrantDelegate, false, true},
		{QuadrantDelete, false, false},
	}
	for _, tt := range tests {
		tk := &Task{Quadrant: tt.q}
		if tk.IsImportant() != tt.important {
			t.Errorf("%s: IsImportant = %v, want %v", tt.q, tk.IsImportant(), tt.important)
		}
		if tk.IsUrgent() != tt.urgent {
			t.Errorf("%s: IsUrgent = %v, want %v", tt.q, tk.IsUrgent(), tt.urgent)
		}
	}
}

func TestBlock(t *testing.T) {
	b := &Block{
		ID:              "b1",
		TaskID:          "t1",
		Date:            time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
		StartTime:       "14:00",
		DurationMinutes: 45,
	}
	if got := b.EndTime(); got != "14:45" {
		t.Errorf("EndTime() = %q, want 14:45", got)
	}
	if got := b.DateKey(); got != "2024-03-05" {
		t.Errorf("DateKey() = %q, want 2024-03-05", got)
	}
	if !b.OnDate(time.Date(2024, 3, 5, 18, 30, 0, 0, time.Local)) {
		t.Error("expected OnDate to ignore time of day")
	}
	if b.OnDate(time.Date(2024, 3, 6, 0, 0, 0, 0, time.Local)) {
		t.Error("expected OnDate false for the next day")
	}
}
