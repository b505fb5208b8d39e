package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Task form fields in focus order.
const (
	FormFieldTitle = iota
	FormFieldQuadrant
	FormFieldDuration
	FormFieldCount
)

// TaskFormModel contains the fields needed to render the task form body.
type TaskFormModel struct {
	TitleInput      string // rendered textinput
	QuadrantOptions []string
	ActiveQuadrant  int
	DurationOptions []string
	ActiveDuration  int
	Focus           int
	Error           string
}

// TaskFormStyles groups styles for the task form body.
type TaskFormStyles struct {
	BodyStyle          lipgloss.Style
	SectionTitleStyle  lipgloss.Style
	SectionFocusStyle  lipgloss.Style
	OptionActive       lipgloss.Style
	OptionInactive     lipgloss.Style
	HintStyle          lipgloss.Style
	ErrorStyle         lipgloss.Style
	QuadrantOptionFunc func(i int, active bool) lipgloss.Style
}

// RenderTaskFormBody renders the modal body for the task form.
func RenderTaskFormBody(model TaskFormModel, styles TaskFormStyles) string {
	var body strings.Builder
	sep := styles.BodyStyle.Render(" ")

	body.WriteString(sectionTitle("TITLE", model.Focus == FormFieldTitle, styles) + "\n")
	body.WriteString(model.TitleInput + "\n\n")

	body.WriteString(sectionTitle("QUADRANT", model.Focus == FormFieldQuadrant, styles) + "\n")
	parts := make([]string, 0, len(model.QuadrantOptions))
	for i, label := range model.QuadrantOptions {
		active := i == model.ActiveQuadrant
		style := styles.OptionInactive
		if styles.QuadrantOptionFunc != nil {
			style = styles.QuadrantOptionFunc(i, active)
		} else if active {
			style = styles.OptionActive
		}
		parts = append(parts, style.Render(label))
	}
	body.WriteString(strings.Join(parts, sep) + "\n\n")

	body.WriteString(sectionTitle("DURATION", model.Focus == FormFieldDuration, styles) + "\n")
	parts = parts[:0]
	for i, label := range model.DurationOptions {
		if i == model.ActiveDuration {
			parts = append(parts, styles.OptionActive.Render(label))
		} else {
			parts = append(parts, styles.OptionInactive.Render(label))
		}
	}
	body.WriteString(strings.Join(parts, sep))
	if model.Focus != FormFieldTitle {
		body.WriteString(sep + styles.HintStyle.Render("Use left/right"))
	}
	body.WriteString("\n")

	if model.Error != "" {
		body.WriteString("\n" + styles.ErrorStyle.Render(model.Error) + "\n")
	}

	return body.String()
}

func sectionTitle(title string, focused bool, styles TaskFormStyles) string {
	if focused {
		return styles.SectionFocusStyle.Render("▸ " + title)
	}
	return styles.SectionTitleStyle.Render("  " + title)
}
