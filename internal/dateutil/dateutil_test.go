package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		got, err := ParseDate(" 2025-01-15 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if Format(got) != "2025-01-15" {
			t.Errorf("got %s, want 2025-01-15", Format(got))
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestSameDayAndCompare(t *testing.T) {
	morning := time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)
	evening := time.Date(2024, 1, 2, 23, 59, 0, 0, time.Local)
	next := time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local)

	if !SameDay(morning, evening) {
		t.Error("expected morning and evening to be the same day")
	}
	if SameDay(evening, next) {
		t.Error("expected evening and next midnight to be different days")
	}
	if got := Compare(morning, evening); got != 0 {
		t.Errorf("Compare(same day) = %d, want 0", got)
	}
	if got := Compare(evening, next); got != -1 {
		t.Errorf("Compare(earlier, later) = %d, want -1", got)
	}
	if got := Compare(next, morning); got != 1 {
		t.Errorf("Compare(later, earlier) = %d, want 1", got)
	}
}

func TestAddDays(t *testing.T) {
	start := time.Date(2024, 2, 28, 15, 30, 0, 0, time.Local)
	got := AddDays(start, 2)
	if Format(got) != "2024-03-01" {
		t.Errorf("AddDays = %s, want 2024-03-01", Format(got))
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("AddDays kept time of day: %v", got)
	}
}

func TestReadable(t *testing.T) {
	got := Readable(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	if got != "Tuesday, March 5" {
		t.Errorf("Readable = %q, want %q", got, "Tuesday, March 5")
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name       string
		input      time.Time
		wantMonday string
		wantSunday string
	}{
		{"wednesday", time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC), "2025-01-13", "2025-01-19"},
		{"monday", time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), "2025-01-13", "2025-01-19"},
		{"sunday", time.Date(2025, 1, 19, 23, 0, 0, 0, time.UTC), "2025-01-13", "2025-01-19"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monday, sunday := WeekRange(tt.input)
			if Format(monday) != tt.wantMonday {
				t.Errorf("monday = %s, want %s", Format(monday), tt.wantMonday)
			}
			if Format(sunday) != tt.wantSunday {
				t.Errorf("sunday = %s, want %s", Format(sunday), tt.wantSunday)
			}
		})
	}
}

func TestParseRelativeDate(t *testing.T) {
	// Wednesday
	ref := time.Date(2025, 1, 15, 14, 30, 0, 0, time.Local)

	tests := []struct {
		input string
		want  string
	}{
		{"", "2025-01-15"},
		{"today", "2025-01-15"},
		{"TOMORROW", "2025-01-16"},
		{"yesterday", "2025-01-14"},
		{"next-week", "2025-01-22"},
		{"friday", "2025-01-17"},
		{"wednesday", "2025-01-22"},
		{"next-monday", "2025-01-20"},
		{"2024-12-31", "2024-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if Format(got) != tt.want {
				t.Errorf("ParseRelativeDate(%q) = %s, want %s", tt.input, Format(got), tt.want)
			}
		})
	}

	for _, bad := range []string{"someday", "next-someday", "15/01/2025"} {
		if _, err := ParseRelativeDate(bad, ref); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("ParseRelativeDate(%q) error = %v, want %v", bad, err, ErrInvalidDateFormat)
		}
	}
}
