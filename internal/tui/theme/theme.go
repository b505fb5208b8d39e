// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/timebox/internal/task"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is used when no theme is configured.
const DefaultName = "mocha"

// ErrUnknownTheme is returned by Load for names with no embedded theme.
var ErrUnknownTheme = errors.New("unknown theme")

var names = []string{"mocha", "macchiato", "frappe", "latte", "light"}

// Theme holds the hex colors of a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Pane borders, modal background
	BgSelection string `toml:"bg_selection"` // Cursor, selection
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Past slots, muted elements
	Accent      string `toml:"accent"`       // Title, focused pane border
	Do          string `toml:"do"`
	Schedule    string `toml:"schedule"`
	Delegate    string `toml:"delegate"`
	Eliminate   string `toml:"eliminate"`
	Current     string `toml:"current"` // Current time slot
	Warning     string `toml:"warning"` // Errors, armed task
}

// Load returns the embedded theme called name (case-insensitive). An empty
// name loads DefaultName.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultName
	}
	if !IsAvailable(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("reading theme %q: %w", name, err)
	}
	return parse(name, data)
}

// parse decodes a theme file and fills optional colors from the required
// ones.
func parse(name string, data []byte) (*Theme, error) {
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	t.applyDefaults()

	required := map[string]string{
		"bg":       t.Bg,
		"fg":       t.Fg,
		"do":       t.Do,
		"schedule": t.Schedule,
		"delegate": t.Delegate,
	}
	for key, hex := range required {
		if !isHex(hex) {
			return nil, fmt.Errorf("theme %q: %s must be a #rrggbb color, got %q", name, key, hex)
		}
	}
	return &t, nil
}

func (t *Theme) applyDefaults() {
	t.BgHighlight = coalesce(t.BgHighlight, t.Bg)
	t.BgSelection = coalesce(t.BgSelection, t.BgHighlight)
	t.FgMuted = coalesce(t.FgMuted, t.Fg)
	t.Accent = coalesce(t.Accent, t.Fg)
	t.Eliminate = coalesce(t.Eliminate, t.FgMuted)
	t.Current = coalesce(t.Current, t.Accent)
	t.Warning = coalesce(t.Warning, t.Do, t.Accent)
}

// QuadrantColor returns the accent hex of q. Unknown quadrants get the
// eliminate color.
func (t *Theme) QuadrantColor(q task.Quadrant) string {
	switch q {
	case task.QuadrantDo:
		return t.Do
	case task.QuadrantSchedule:
		return t.Schedule
	case task.QuadrantDelegate:
		return t.Delegate
	default:
		return t.Eliminate
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func isHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// Available returns the embedded theme names, default first.
func Available() []string {
	return slices.Clone(names)
}

// IsAvailable reports whether a theme name is embedded.
func IsAvailable(name string) bool {
	return slices.Contains(names, strings.ToLower(name))
}
