package scheduler

import (
	"testing"
	"time"

	"github.com/javiermolinar/timebox/internal/slot"
	"github.com/javiermolinar/timebox/internal/task"
)

func TestFocusSlot(t *testing.T) {
	g := slot.Default()
	today := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		date time.Time
		now  time.Time
		want string
	}{
		{"today uses current hour", today, today.Add(14*time.Hour + 37*time.Minute), "14:00"},
		{"today before grid clamps to first", today, today.Add(3 * time.Hour), "06:00"},
		{"other day uses morning", today.AddDate(0, 0, 1), today.Add(14 * time.Hour), "08:00"},
		{"past day uses morning", today.AddDate(0, 0, -3), today.Add(14 * time.Hour), "08:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Label(FocusSlot(g, tt.date, tt.now))
			if got != tt.want {
				t.Errorf("FocusSlot() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFocusSlot_ClampsToLastSlot(t *testing.T) {
	g, err := slot.New(9, 17, 30)
	if err != nil {
		t.Fatal(err)
	}
	today := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)

	got := g.Label(FocusSlot(g, today, today.Add(23*time.Hour)))
	if got != "17:30" {
		t.Errorf("FocusSlot() = %q, want %q", got, "17:30")
	}
}

func TestFreeSlot_EmptyDay(t *testing.T) {
	g := slot.Default()
	today := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		date   time.Time
		now    time.Time
		want   string
		wantOK bool
	}{
		{"mid slot rounds up", today, today.Add(10*time.Hour + 5*time.Minute), "10:15", true},
		{"on boundary skips current", today, today.Add(10 * time.Hour), "10:15", true},
		{"future day opens at start", today.AddDate(0, 0, 1), today.Add(10 * time.Hour), "06:00", true},
		{"past day has nothing", today.AddDate(0, 0, -1), today.Add(10 * time.Hour), "", false},
		{"late night has nothing", today, today.Add(23*time.Hour + 50*time.Minute), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FreeSlot(g, nil, tt.date, tt.now, 15)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FreeSlot() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFreeSlot(t *testing.T) {
	g := slot.Default()
	today := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	now := today.Add(9*time.Hour + 5*time.Minute)
	busy := []*task.Block{
		{ID: "b1", TaskID: "a", Date: today, StartTime: "09:15", DurationMinutes: 60},
		{ID: "b2", TaskID: "b", Date: today, StartTime: "10:30", DurationMinutes: 15},
		{ID: "b3", TaskID: "c", Date: today.AddDate(0, 0, 1), StartTime: "06:00", DurationMinutes: 30},
	}

	tests := []struct {
		name     string
		date     time.Time
		duration int
		want     string
		wantOK   bool
	}{
		{"skips start and covered slots", today, 15, "10:15", true},
		{"needs room for the whole block", today, 30, "10:45", true},
		{"other dates do not count", today.AddDate(0, 0, 2), 60, "06:00", true},
		{"blocks on that date count", today.AddDate(0, 0, 1), 15, "06:30", true},
		{"past day has nothing", today.AddDate(0, 0, -1), 15, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FreeSlot(g, busy, tt.date, now, tt.duration)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FreeSlot() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
