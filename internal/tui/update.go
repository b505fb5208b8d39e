package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/tui/commands"
)

const statusTTL = 3 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureSlotVisible()
		return m, nil

	case commands.TaskCreatedMsg:
		m.selectTaskByID(msg.Task.ID)
		return m, m.setStatus(fmt.Sprintf("Added %q", msg.Task.Title))

	case commands.TaskToggledMsg:
		state := "Reopened"
		if msg.Task.Completed {
			state = "Completed"
		}
		m.selectTaskByID(msg.Task.ID)
		return m, m.setStatus(fmt.Sprintf("%s %q", state, msg.Task.Title))

	case commands.TaskDeletedMsg:
		m.clampTaskCursor()
		text := fmt.Sprintf("Deleted %q", msg.Task.Title)
		if msg.Blocks > 0 {
			text += fmt.Sprintf(" and %d block(s)", msg.Blocks)
		}
		return m, m.setStatus(text)

	case commands.BlockDeletedMsg:
		return m, m.setStatus(fmt.Sprintf("Removed block %s-%s", msg.Block.StartTime, msg.Block.EndTime()))

	case commands.SlotChosenMsg:
		return m, m.handleSlotChosen(msg)

	case commands.ErrMsg:
		m.log.Debug("command failed", zap.Error(msg.Err))
		return m, m.setError(msg.Err)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if !time.Now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil

	case commands.TickMsg:
		return m, commands.Tick(msg.Time)
	}

	// Forward cursor blinks and other input messages to the form.
	if m.mode == ModeForm {
		var cmd tea.Cmd
		m.formTitle, cmd = m.formTitle.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleSlotChosen(msg commands.SlotChosenMsg) tea.Cmd {
	title := "task"
	if msg.Task != nil {
		title = fmt.Sprintf("%q", msg.Task.Title)
	}

	switch msg.Result.Outcome {
	case scheduler.OutcomePlaced:
		b := msg.Result.Block
		m.slotCursor = m.planner.Grid().Index(b.StartTime)
		m.ensureSlotVisible()
		return m.setStatus(fmt.Sprintf("Placed %s at %s-%s", title, b.StartTime, b.EndTime()))
	case scheduler.OutcomeDuplicate:
		return m.setError(fmt.Errorf("%s is already scheduled on this day", title))
	default:
		return m.setStatus("Nothing to place")
	}
}

// setStatus shows a temporary message.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusMsg = text
	m.statusErr = false
	m.statusTime = time.Now().Add(statusTTL)
	return commands.ClearStatusAfter(statusTTL)
}

// setError shows a temporary error.
func (m *Model) setError(err error) tea.Cmd {
	m.statusMsg = "Error: " + err.Error()
	m.statusErr = true
	m.statusTime = time.Now().Add(2 * statusTTL)
	return commands.ClearStatusAfter(2 * statusTTL)
}
