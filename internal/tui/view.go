package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timebox/internal/planner"
	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/summary"
	"github.com/javiermolinar/timebox/internal/task"
	"github.com/javiermolinar/timebox/internal/tui/view"
)

// View renders the model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return view.Render(view.ViewState{})
	}

	day := m.planner.Day(m.date)
	leftW := max(taskPaneMin, m.width*2/5)
	rightW := max(0, m.width-leftW)
	paneH := m.gridRows() + paneChrome - 2 // border lines are added by the style

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTaskPane(leftW, paneH, day),
		m.renderGridPane(rightW, paneH, day),
	)
	base := strings.Join([]string{
		m.renderHeader(day),
		"",
		body,
		m.renderFooter(day),
	}, "\n")

	modal := ""
	switch m.mode {
	case ModeForm:
		modal = m.renderForm()
	case ModeConfirm:
		modal = m.renderConfirm()
	}

	return view.Render(view.ViewState{
		Width:        m.width,
		Height:       m.height,
		BaseContent:  base,
		ModalContent: modal,
		ShowModal:    modal != "",
		ModalBg:      m.styles.ModalBgColor,
	})
}

func (m Model) renderHeader(day planner.DayView) string {
	s := m.styles
	dateStyle := s.HeaderStyle
	date := day.Date.Format("Monday, January 2, 2006")
	if day.IsToday {
		dateStyle = s.TodayStyle
		date += " (today)"
	}
	left := s.TitleStyle.Render("timebox") + "  " + dateStyle.Render(date)

	if st := m.planner.State(); st.Mode == scheduler.SelectingSlot {
		if t, err := m.planner.Task(st.ActiveTaskID); err == nil {
			left += "  " + s.SelectingTag.Render("PLACING "+view.Truncate(t.Title, 24))
		}
	}

	prog := m.planner.Progress()
	filled, empty := view.ProgressBar(prog.Completed, prog.Total, 12)
	right := s.ProgressStyle.Render(filled) + s.MutedStyle.Render(empty) +
		s.MutedStyle.Render(fmt.Sprintf(" %d/%d done", prog.Completed, prog.Total))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return view.Truncate(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) paneStyle(p Pane, width, height int) lipgloss.Style {
	style := m.styles.PaneStyle
	if m.pane == p && m.mode == ModeNormal {
		style = m.styles.PaneFocusedStyle
	}
	return style.Width(max(0, width-2)).Height(height)
}

func (m Model) renderTaskPane(width, height int, day planner.DayView) string {
	s := m.styles
	inner := max(0, width-2)
	tasks := m.planner.Tasks()
	armed := m.planner.State().ActiveTaskID

	lines := []string{s.PaneTitleStyle.Render(fmt.Sprintf("TASKS (%d)", len(tasks)))}
	if len(tasks) == 0 {
		lines = append(lines, s.MutedStyle.Render("No tasks. Press a to add one."))
	}

	rows := max(1, height-1)
	start := max(0, m.taskCursor-rows+1)
	for i := start; i < len(tasks) && i < start+rows; i++ {
		lines = append(lines, m.renderTaskRow(tasks[i], inner, i == m.taskCursor, tasks[i].ID == armed, day))
	}

	return m.paneStyle(PaneTasks, width, height).Render(strings.Join(lines, "\n"))
}

func (m Model) renderTaskRow(t *task.Task, width int, cursor, armed bool, day planner.DayView) string {
	s := m.styles

	check := "○"
	if t.Completed {
		check = "✓"
	}
	scheduled := " "
	if m.planner.IsScheduled(t.ID, day.Date) {
		scheduled = "•"
	}
	label := view.PadRight(t.Quadrant.Label(), 9)
	dur := view.PadRight(task.FormatDuration(t.DurationMinutes), 5)
	titleW := max(0, width-20) // check, label, duration, marker and spacing
	title := view.PadRight(t.Title, titleW)

	switch {
	case armed:
		return s.TaskArmedStyle.Render(view.PadRight(fmt.Sprintf("%s %s %s %s %s", check, label, dur, title, scheduled), width))
	case cursor && m.pane == PaneTasks:
		return s.TaskCursorStyle.Render(view.PadRight(fmt.Sprintf("%s %s %s %s %s", check, label, dur, title, scheduled), width))
	}

	titleStyle := s.TaskRowStyle
	if t.Completed {
		titleStyle = s.TaskCompletedStyle
	}
	return fmt.Sprintf("%s %s %s %s %s",
		check,
		s.QuadrantLabel(t.Quadrant).Render(label),
		s.MutedStyle.Render(dur),
		titleStyle.Render(title),
		s.CurrentAccentStyle.Render(scheduled),
	)
}

func (m Model) renderGridPane(width, height int, day planner.DayView) string {
	s := m.styles
	inner := max(0, width-2)
	cellW := max(0, inner-7)

	title := day.Date.Format("Mon Jan 2")
	if day.ScheduledMinutes > 0 {
		title += " · " + task.FormatDuration(day.ScheduledMinutes) + " scheduled"
	}
	lines := []string{s.PaneTitleStyle.Render(title)}

	now := m.planner.Now()
	interval := m.planner.Grid().Interval()
	nowMins := now.Hour()*60 + now.Minute()
	selecting := m.planner.State().Mode == scheduler.SelectingSlot

	end := min(len(day.Rows), m.scroll+max(1, height-1))
	for i := m.scroll; i < end; i++ {
		row := day.Rows[i]
		mins := task.TimeToMinutes(row.Label)
		current := day.IsToday && nowMins >= mins && nowMins < mins+interval

		timeStyle := s.TimeColumnStyle
		if current {
			timeStyle = s.TimeCurrentStyle
		}
		marker := " "
		if current {
			marker = s.CurrentAccentStyle.Render("▌")
		}

		cell := m.renderCell(day.Rows, i, cellW)
		if i == m.slotCursor && m.pane == PaneGrid && m.mode == ModeNormal {
			text := view.PadRight(cellText(day.Rows, i, cellW), cellW)
			if selecting {
				if strings.TrimSpace(text) == "" {
					text = view.PadRight("▸ place here", cellW)
				}
				cell = s.TargetCursorStyle.Render(text)
			} else {
				cell = s.CursorStyle.Render(text)
			}
		}

		lines = append(lines, timeStyle.Render(row.Label)+marker+cell)
	}

	return m.paneStyle(PaneGrid, width, height).Render(strings.Join(lines, "\n"))
}

// cellText is the plain text of grid row i.
func cellText(rows []planner.Row, i, width int) string {
	row := rows[i]
	switch {
	case row.Block != nil && row.Task == nil:
		return "(deleted task)"
	case row.Block != nil:
		text := fmt.Sprintf(" %s  %s-%s", row.Task.Title, row.Block.StartTime, row.Block.EndTime())
		if row.Task.Completed {
			text = " ✓" + text
		}
		return view.Truncate(text, width)
	case row.Past && !row.Covered:
		return "·"
	}
	return ""
}

func (m Model) renderCell(rows []planner.Row, i, width int) string {
	s := m.styles
	text := view.PadRight(cellText(rows, i, width), width)

	start, ok := blockRowIn(rows, i)
	if !ok {
		if rows[i].Past {
			return s.PastCellStyle.Render(text)
		}
		return s.EmptyCellStyle.Render(text)
	}
	if start.Task == nil {
		return s.OrphanBlockStyle.Render(text)
	}
	return s.Block(start.Task.Quadrant, start.Block == rows[i].Block, start.Past).Render(text)
}

func (m Model) renderFooter(day planner.DayView) string {
	s := m.styles

	status := m.statusMsg
	statusStyle := s.StatusStyle
	if m.statusErr {
		statusStyle = s.ErrorStyle
	}
	if status == "" {
		sum := summary.Day(day)
		status = fmt.Sprintf("%d block(s) · %d free slot(s) · %d%% of scheduled work done",
			len(sum.Entries), sum.FreeSlots, sum.Percent())
		statusStyle = s.MutedStyle
	}

	return view.RenderFooter(view.FooterModel{
		Width:       m.width,
		StatusText:  status,
		HelpText:    m.helpText(),
		StatusStyle: statusStyle,
		HelpStyle:   s.HelpStyle,
	})
}

func (m Model) helpText() string {
	switch {
	case m.mode == ModeForm:
		return "tab next field · ←/→ change · enter add · esc cancel"
	case m.mode == ModeConfirm:
		return "y confirm · n cancel"
	case m.planner.State().Mode == scheduler.SelectingSlot:
		return "j/k move · h/l day · enter place · esc cancel · tab switch pane"
	case m.pane == PaneGrid:
		return "j/k move · h/l day · t today · x done · d remove block · y copy · tab tasks · q quit"
	default:
		return "j/k move · a add · s schedule · x done · d delete · h/l day · y copy · tab grid · q quit"
	}
}

func (m Model) renderForm() string {
	s := m.styles
	quadrants := task.Quadrants()

	qLabels := make([]string, len(quadrants))
	for i, q := range quadrants {
		qLabels[i] = q.Label()
	}
	dLabels := make([]string, len(m.config.UI.Durations))
	for i, d := range m.config.UI.Durations {
		dLabels[i] = task.FormatDuration(d)
	}

	body := view.RenderTaskFormBody(view.TaskFormModel{
		TitleInput:      m.formTitle.View(),
		QuadrantOptions: qLabels,
		ActiveQuadrant:  m.formQuadrant,
		DurationOptions: dLabels,
		ActiveDuration:  m.formDuration,
		Focus:           m.formFocus,
		Error:           m.formError,
	}, view.TaskFormStyles{
		BodyStyle:         s.ModalBodyStyle,
		SectionTitleStyle: s.ModalSectionTitleStyle,
		SectionFocusStyle: s.ModalSectionFocusStyle,
		OptionActive:      s.OptionActiveStyle,
		OptionInactive:    s.OptionInactiveStyle,
		HintStyle:         s.ModalMutedStyle,
		ErrorStyle:        s.ErrorStyle,
		QuadrantOptionFunc: func(i int, active bool) lipgloss.Style {
			return s.OptionForQuadrant(quadrants[i], active)
		},
	})

	footer := view.RenderModalButtons(s.modalStyles(), "[Enter] Add", "[Esc] Cancel")
	return view.RenderModalFrame("NEW TASK", body, footer, s.modalStyles())
}

func (m Model) renderConfirm() string {
	s := m.styles
	c := m.confirm

	var title, question string
	var details []string
	switch {
	case c.block != nil:
		title = "REMOVE BLOCK"
		question = fmt.Sprintf("Remove the block at %s-%s?", c.block.StartTime, c.block.EndTime())
		if c.task != nil {
			details = append(details, c.task.Title)
		}
	case c.task != nil:
		title = "DELETE TASK"
		question = fmt.Sprintf("Delete %q?", c.task.Title)
		if n := len(m.planner.BlocksForTask(c.task.ID)); n > 0 {
			details = append(details, fmt.Sprintf("Its %d time block(s) are removed too.", n))
		}
	default:
		return ""
	}

	body := view.RenderConfirmBody(question, details, s.ModalBodyStyle, s.ModalMutedStyle)
	footer := view.RenderModalButtons(s.modalStyles(), "[y] Confirm", "[n] Cancel")
	return view.RenderModalFrame(title, body, footer, s.modalStyles())
}
