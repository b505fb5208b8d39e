// Package tui provides the terminal user interface for timebox.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timebox/internal/task"
	"github.com/javiermolinar/timebox/internal/tui/theme"
	"github.com/javiermolinar/timebox/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title and day header
	TitleStyle    lipgloss.Style
	HeaderStyle   lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectingTag  lipgloss.Style
	ProgressStyle lipgloss.Style
	MutedStyle    lipgloss.Style

	// Panes
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style

	// Task list rows
	TaskRowStyle       lipgloss.Style
	TaskCursorStyle    lipgloss.Style
	TaskArmedStyle     lipgloss.Style
	TaskCompletedStyle lipgloss.Style

	// Grid rows
	TimeColumnStyle    lipgloss.Style
	TimeCurrentStyle   lipgloss.Style
	EmptyCellStyle     lipgloss.Style
	PastCellStyle      lipgloss.Style
	CursorStyle        lipgloss.Style
	TargetCursorStyle  lipgloss.Style
	OrphanBlockStyle   lipgloss.Style
	CurrentAccentStyle lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	// Modal
	ModalBgColor           lipgloss.Color
	ModalStyle             lipgloss.Style
	ModalHeaderStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMutedStyle        lipgloss.Style
	ModalSectionTitleStyle lipgloss.Style
	ModalSectionFocusStyle lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	OptionActiveStyle      lipgloss.Style
	OptionInactiveStyle    lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p}

	s.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	s.HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Fg)
	s.TodayStyle = s.HeaderStyle.Foreground(p.Accent)
	s.SelectingTag = lipgloss.NewStyle().
		Bold(true).
		Background(p.Warning).
		Foreground(p.TextOnWarning).
		Padding(0, 1)
	s.ProgressStyle = lipgloss.NewStyle().Foreground(p.Current)
	s.MutedStyle = lipgloss.NewStyle().Foreground(p.FgMuted)

	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BgSelection)
	s.PaneFocusedStyle = s.PaneStyle.BorderForeground(p.Accent)
	s.PaneTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)

	s.TaskRowStyle = lipgloss.NewStyle().Foreground(p.Fg)
	s.TaskCursorStyle = lipgloss.NewStyle().
		Background(p.BgSelection).
		Foreground(p.Fg).
		Bold(true)
	s.TaskArmedStyle = lipgloss.NewStyle().
		Background(p.Warning).
		Foreground(p.TextOnWarning).
		Bold(true)
	s.TaskCompletedStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Strikethrough(true)

	s.TimeColumnStyle = lipgloss.NewStyle().Foreground(p.Accent).Width(6)
	s.TimeCurrentStyle = s.TimeColumnStyle.Foreground(p.Current).Bold(true)
	s.EmptyCellStyle = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.PastCellStyle = lipgloss.NewStyle().Foreground(p.BgSelection)
	s.CursorStyle = lipgloss.NewStyle().
		Background(p.BgSelection).
		Foreground(p.Accent).
		Bold(true)
	s.TargetCursorStyle = lipgloss.NewStyle().
		Background(p.Warning).
		Foreground(p.TextOnWarning).
		Bold(true)
	s.OrphanBlockStyle = lipgloss.NewStyle().
		Background(p.BgHighlight).
		Foreground(p.FgMuted).
		Italic(true)
	s.CurrentAccentStyle = lipgloss.NewStyle().Foreground(p.Current)

	s.StatusStyle = lipgloss.NewStyle().Foreground(p.Current)
	s.ErrorStyle = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
	s.HelpStyle = lipgloss.NewStyle().Foreground(p.FgMuted)

	s.ModalBgColor = p.BgHighlight
	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Background(p.BgHighlight).
		Foreground(p.Fg).
		Padding(1, 2).
		Width(56)
	s.ModalHeaderStyle = lipgloss.NewStyle().Background(p.BgHighlight)
	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.BgHighlight)
	s.ModalFooterStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.BgHighlight)
	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.BgHighlight)
	s.ModalMutedStyle = s.ModalBodyStyle.Foreground(p.FgMuted)
	s.ModalSectionTitleStyle = s.ModalBodyStyle.Foreground(p.FgMuted).Bold(true)
	s.ModalSectionFocusStyle = s.ModalBodyStyle.Foreground(p.Accent).Bold(true)
	s.ModalInputTextStyle = s.ModalBodyStyle
	s.ModalPlaceholderStyle = s.ModalMutedStyle.Italic(true)
	s.ModalButtonStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.BgSelection).
		Padding(0, 1)
	s.ModalButtonActiveStyle = s.ModalButtonStyle.
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Bold(true)
	s.OptionActiveStyle = lipgloss.NewStyle().
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Bold(true).
		Padding(0, 1)
	s.OptionInactiveStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.BgSelection).
		Padding(0, 1)

	return s
}

// QuadrantLabel renders q's short label in its color.
func (s *Styles) QuadrantLabel(q task.Quadrant) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.palette.Quadrant(q).Fg).Bold(q == task.QuadrantDo)
}

// Block returns the style of a grid row covered by a block of quadrant q.
// Continuation rows use the alternate shade; blocks that already started
// are muted.
func (s *Styles) Block(q task.Quadrant, first, past bool) lipgloss.Style {
	c := s.palette.Quadrant(q)
	bg := c.Bg
	switch {
	case past:
		bg = c.PastBg
	case !first:
		bg = c.BgAlt
	}
	return lipgloss.NewStyle().Background(bg).Foreground(c.Text).Bold(first && !past)
}

// OptionForQuadrant styles the quadrant choices of the task form.
func (s *Styles) OptionForQuadrant(q task.Quadrant, active bool) lipgloss.Style {
	if !active {
		return s.OptionInactiveStyle
	}
	c := s.palette.Quadrant(q)
	return s.OptionActiveStyle.Background(c.Bg).Foreground(c.Text)
}

// modalStyles returns the styles of the modal frame.
func (s *Styles) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		ModalHeaderStyle:       s.ModalHeaderStyle,
		ModalTitleStyle:        s.ModalTitleStyle,
		ModalFooterStyle:       s.ModalFooterStyle,
		ModalStyle:             s.ModalStyle,
		ModalButtonStyle:       s.ModalButtonStyle,
		ModalButtonActiveStyle: s.ModalButtonActiveStyle,
		ModalBodyStyle:         s.ModalBodyStyle,
	}
}
