package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/javiermolinar/timebox/internal/task"
)

func TestMatchID(t *testing.T) {
	ids := []string{"abc123", "abd456", "ff0000"}

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{name: "exact", ref: "abc123", want: "abc123"},
		{name: "unique prefix", ref: "ff", want: "ff0000"},
		{name: "ambiguous prefix", ref: "ab", wantErr: errAmbiguousID},
		{name: "no match", ref: "zz", wantErr: task.ErrTaskNotFound},
		{name: "blank", ref: "  ", wantErr: task.ErrTaskNotFound},
		{name: "trimmed", ref: " abd ", want: "abd456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchID(ids, tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("matchID(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestMatchIDPrefersExactMatch(t *testing.T) {
	got, err := matchID([]string{"abc", "abcdef"}, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abc" {
		t.Errorf("expected exact id, got %q", got)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("short ids stay as they are, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer title", 10, "a longe..."},
		{"ünïcödé title", 8, "ünïcö..."},
		{"tiny", 3, "tiny"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	DisableColor()

	tests := []struct {
		done, total int
		wantFilled  int
		wantPct     string
	}{
		{0, 0, 0, "(0% done)"},
		{1, 2, 5, "(50% done)"},
		{2, 3, 6, "(67% done)"},
		{4, 4, 10, "(100% done)"},
	}

	for _, tt := range tests {
		got := ProgressBar(tt.done, tt.total, 10)
		if filled := strings.Count(got, "█"); filled != tt.wantFilled {
			t.Errorf("ProgressBar(%d, %d) filled = %d, want %d", tt.done, tt.total, filled, tt.wantFilled)
		}
		if !strings.Contains(got, tt.wantPct) {
			t.Errorf("ProgressBar(%d, %d) = %q, want %s", tt.done, tt.total, got, tt.wantPct)
		}
	}
}
