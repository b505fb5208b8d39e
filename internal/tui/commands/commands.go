// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timebox/internal/planner"
	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/task"
)

// TaskCreatedMsg is sent when a task was added to the backlog.
type TaskCreatedMsg struct {
	Task *task.Task
}

// TaskToggledMsg is sent when a task's completion flag flipped.
type TaskToggledMsg struct {
	Task *task.Task
}

// TaskDeletedMsg is sent when a task and its blocks were removed.
type TaskDeletedMsg struct {
	Task   *task.Task
	Blocks int
}

// BlockDeletedMsg is sent when a time block was removed.
type BlockDeletedMsg struct {
	Block *task.Block
}

// SlotChosenMsg is sent after the armed task was offered a slot.
type SlotChosenMsg struct {
	Result scheduler.Result
	Task   *task.Task
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// TickMsg is sent once a minute so past slots and the current-time marker
// stay accurate.
type TickMsg struct {
	Time time.Time
}

// CreateTask adds a task.
func CreateTask(ctx context.Context, p *planner.Planner, title string, q task.Quadrant, minutes int) tea.Cmd {
	return func() tea.Msg {
		t, err := p.CreateTask(ctx, title, q, minutes)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return TaskCreatedMsg{Task: t}
	}
}

// ToggleComplete flips a task's completion flag.
func ToggleComplete(ctx context.Context, p *planner.Planner, id string) tea.Cmd {
	return func() tea.Msg {
		t, err := p.ToggleComplete(ctx, id)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return TaskToggledMsg{Task: t}
	}
}

// DeleteTask removes a task and its blocks.
func DeleteTask(ctx context.Context, p *planner.Planner, id string) tea.Cmd {
	return func() tea.Msg {
		t, err := p.Task(id)
		if err != nil {
			return ErrMsg{Err: err}
		}
		blocks := len(p.BlocksForTask(id))
		if err := p.DeleteTask(ctx, id); err != nil {
			return ErrMsg{Err: err}
		}
		return TaskDeletedMsg{Task: t, Blocks: blocks}
	}
}

// DeleteBlock removes a time block.
func DeleteBlock(ctx context.Context, p *planner.Planner, b *task.Block) tea.Cmd {
	return func() tea.Msg {
		if err := p.DeleteBlock(ctx, b.ID); err != nil {
			return ErrMsg{Err: err}
		}
		return BlockDeletedMsg{Block: b}
	}
}

// ChooseSlot offers the slot at startTime on date to the armed task.
func ChooseSlot(ctx context.Context, p *planner.Planner, date time.Time, startTime string) tea.Cmd {
	armed := p.State().ActiveTaskID
	return func() tea.Msg {
		t, _ := p.Task(armed)
		res, err := p.ChooseSlot(ctx, date, startTime)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return SlotChosenMsg{Result: res, Task: t}
	}
}

// CopyText writes text to the clipboard through write.
func CopyText(write func(string) error, text, done string) tea.Cmd {
	return func() tea.Msg {
		if err := write(text); err != nil {
			return ErrMsg{Err: err}
		}
		return StatusMsgCmd{Msg: done}
	}
}

// Tick schedules the next TickMsg at the start of the next minute.
func Tick(now time.Time) tea.Cmd {
	next := now.Truncate(time.Minute).Add(time.Minute)
	return tea.Tick(next.Sub(now), func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// ClearStatusAfter sends ClearStatusMsg after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
