package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/summary"
	"github.com/javiermolinar/timebox/internal/task"
	"github.com/javiermolinar/timebox/internal/tui/commands"
	"github.com/javiermolinar/timebox/internal/tui/view"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.log.Debug("key",
		zap.String("key", msg.String()),
		zap.Int("mode", int(m.mode)),
		zap.Int("pane", int(m.pane)))

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeForm:
		return m.handleFormKeys(msg)
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		if m.pane == PaneTasks {
			m.pane = PaneGrid
		} else {
			m.pane = PaneTasks
		}
		return m, nil

	// Navigation
	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil
	case "g", "home":
		m.moveCursor(-m.planner.Grid().Len() - len(m.planner.Tasks()))
		return m, nil
	case "G", "end":
		m.moveCursor(m.planner.Grid().Len() + len(m.planner.Tasks()))
		return m, nil
	case "h", "left":
		m.showDate(dateutil.AddDays(m.date, -1))
		return m, nil
	case "l", "right":
		m.showDate(dateutil.AddDays(m.date, 1))
		return m, nil
	case "t":
		m.showDate(dateutil.TruncateToDay(m.planner.Now()))
		return m, nil

	// Actions
	case "a":
		return m, m.openForm()

	case "s":
		if m.pane == PaneTasks {
			return m, m.selectForScheduling()
		}
		return m, nil

	case "enter":
		if m.pane == PaneTasks {
			return m, m.selectForScheduling()
		}
		return m, m.chooseSlot()

	case "esc":
		if m.planner.State().Mode == scheduler.SelectingSlot {
			m.planner.CancelSelection()
			return m, m.setStatus("Selection cancelled")
		}
		return m, nil

	case "x":
		if t := m.focusedTask(); t != nil {
			return m, commands.ToggleComplete(m.ctx, m.planner, t.ID)
		}
		return m, nil

	case "d":
		return m, m.askDelete()

	case "y":
		text := summary.Day(m.planner.Day(m.date)).Text()
		return m, commands.CopyText(m.clipboard, text, "Copied day summary to clipboard")
	}

	return m, nil
}

// handleFormKeys handles keys while the new task form is open.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil

	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % view.FormFieldCount
		m.syncFormFocus()
		return m, nil

	case "shift+tab", "up":
		m.formFocus = (m.formFocus + view.FormFieldCount - 1) % view.FormFieldCount
		m.syncFormFocus()
		return m, nil

	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch m.formFocus {
		case view.FormFieldQuadrant:
			m.formQuadrant = wrap(m.formQuadrant+delta, len(task.Quadrants()))
			return m, nil
		case view.FormFieldDuration:
			m.formDuration = wrap(m.formDuration+delta, len(m.config.UI.Durations))
			return m, nil
		}

	case "enter":
		title := strings.TrimSpace(m.formTitle.Value())
		if title == "" {
			m.formError = task.ErrEmptyTitle.Error()
			m.formFocus = view.FormFieldTitle
			m.syncFormFocus()
			return m, nil
		}
		q := task.Quadrants()[m.formQuadrant]
		minutes := m.config.UI.Durations[m.formDuration]
		m.closeForm()
		return m, commands.CreateTask(m.ctx, m.planner, title, q, minutes)
	}

	if m.formFocus != view.FormFieldTitle {
		return m, nil
	}
	var cmd tea.Cmd
	m.formTitle, cmd = m.formTitle.Update(msg)
	m.formError = ""
	return m, cmd
}

// handleConfirmKeys handles the y/n of a delete confirmation.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		pending := m.confirm
		m.confirm = pendingDelete{}
		m.mode = ModeNormal
		switch {
		case pending.block != nil:
			return m, commands.DeleteBlock(m.ctx, m.planner, pending.block)
		case pending.task != nil:
			return m, commands.DeleteTask(m.ctx, m.planner, pending.task.ID)
		}
		return m, nil

	case "n", "esc", "q":
		m.confirm = pendingDelete{}
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if m.pane == PaneTasks {
		m.taskCursor += delta
		m.clampTaskCursor()
		return
	}
	m.slotCursor = max(0, min(m.slotCursor+delta, m.planner.Grid().Len()-1))
	m.ensureSlotVisible()
}

func (m *Model) showDate(date time.Time) {
	m.date = date
	m.slotCursor = m.planner.Day(date).Focus
	m.ensureSlotVisible()
}

func (m *Model) selectForScheduling() tea.Cmd {
	t := m.selectedTask()
	if t == nil {
		return nil
	}
	state, err := m.planner.SelectTask(t.ID)
	if err != nil {
		return m.setError(err)
	}
	if state.Mode != scheduler.SelectingSlot {
		return m.setStatus("Selection cancelled")
	}

	m.pane = PaneGrid
	if label, ok := scheduler.FreeSlot(m.planner.Grid(), m.planner.BlocksForDate(m.date), m.date, m.planner.Now(), t.DurationMinutes); ok && m.slotCursor < m.planner.Grid().Index(label) {
		m.slotCursor = m.planner.Grid().Index(label)
	}
	m.ensureSlotVisible()
	return m.setStatus(fmt.Sprintf("Pick a slot for %q: enter places it, esc cancels", t.Title))
}

func (m *Model) chooseSlot() tea.Cmd {
	label := m.planner.Grid().Label(m.slotCursor)
	if m.planner.State().Mode == scheduler.SelectingSlot {
		return commands.ChooseSlot(m.ctx, m.planner, m.date, label)
	}
	if row, ok := m.blockRow(m.slotCursor); ok {
		title := "(deleted task)"
		if row.Task != nil {
			title = row.Task.Title
		}
		return m.setStatus(fmt.Sprintf("%s-%s %s", row.Block.StartTime, row.Block.EndTime(), title))
	}
	return nil
}

func (m *Model) askDelete() tea.Cmd {
	if m.pane == PaneTasks {
		t := m.selectedTask()
		if t == nil {
			return nil
		}
		m.confirm = pendingDelete{task: t}
		m.mode = ModeConfirm
		return nil
	}

	row, ok := m.blockRow(m.slotCursor)
	if !ok {
		return nil
	}
	if row.Past {
		return m.setError(task.ErrPastBlock)
	}
	m.confirm = pendingDelete{block: row.Block, task: row.Task}
	m.mode = ModeConfirm
	return nil
}

func (m *Model) openForm() tea.Cmd {
	m.mode = ModeForm
	m.formTitle.Reset()
	m.formError = ""
	m.formFocus = view.FormFieldTitle
	m.formQuadrant = max(0, slices.Index(task.Quadrants(), m.config.Quadrant()))
	m.formDuration = max(0, slices.Index(m.config.UI.Durations, m.config.UI.DefaultDuration))
	return m.formTitle.Focus()
}

func (m *Model) closeForm() {
	m.mode = ModeNormal
	m.formTitle.Blur()
	m.formError = ""
}

func (m *Model) syncFormFocus() {
	if m.formFocus == view.FormFieldTitle {
		m.formTitle.Focus()
		return
	}
	m.formTitle.Blur()
}

// selectedTask returns the task under the list cursor.
func (m *Model) selectedTask() *task.Task {
	tasks := m.planner.Tasks()
	if m.taskCursor < 0 || m.taskCursor >= len(tasks) {
		return nil
	}
	return tasks[m.taskCursor]
}

// focusedTask returns the task under the cursor of the focused pane.
func (m *Model) focusedTask() *task.Task {
	if m.pane == PaneTasks {
		return m.selectedTask()
	}
	if row, ok := m.blockRow(m.slotCursor); ok {
		return row.Task
	}
	return nil
}

func (m *Model) selectTaskByID(id string) {
	for i, t := range m.planner.Tasks() {
		if t.ID == id {
			m.taskCursor = i
			return
		}
	}
	m.clampTaskCursor()
}

func (m *Model) clampTaskCursor() {
	n := len(m.planner.Tasks())
	m.taskCursor = max(0, min(m.taskCursor, n-1))
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
