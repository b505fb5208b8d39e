package scheduler

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/timebox/internal/clock"
	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/slot"
	"github.com/javiermolinar/timebox/internal/store"
	"github.com/javiermolinar/timebox/internal/task"
)

// Coordinator errors.
var (
	ErrPastSlot      = errors.New("slot has already started")
	ErrTaskCompleted = errors.New("completed tasks cannot be scheduled")
)

// Mode is the coordinator's interaction mode.
type Mode int

const (
	Idle Mode = iota
	SelectingSlot
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case SelectingSlot:
		return "selecting-slot"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// State is the coordinator state. ActiveTaskID is set only while
// SelectingSlot.
type State struct {
	Mode         Mode
	ActiveTaskID string
}

// Selecting reports whether id is the task armed for placement.
func (s State) Selecting(id string) bool {
	return s.Mode == SelectingSlot && s.ActiveTaskID == id
}

// Outcome describes what a placement attempt did.
type Outcome int

const (
	// OutcomeIgnored means nothing was placed and nothing was wrong:
	// no task was armed, or the armed task vanished.
	OutcomeIgnored Outcome = iota
	// OutcomePlaced means a new block was created.
	OutcomePlaced
	// OutcomeDuplicate means the task already had a block on that date;
	// the placement was dropped silently.
	OutcomeDuplicate
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaced:
		return "placed"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "ignored"
	}
}

// Result is returned by ChooseSlot and DropTask. Block is set only for
// OutcomePlaced.
type Result struct {
	Outcome Outcome
	Block   *task.Block
}

// Coordinator owns the two-step "select a task, then pick a slot" flow.
type Coordinator struct {
	mu     sync.Mutex
	tasks  *store.TaskStore
	blocks *store.BlockStore
	grid   *slot.Grid
	clock  clock.Clock
	log    *zap.Logger
	state  State
}

// NewCoordinator creates an idle coordinator over the given stores.
func NewCoordinator(tasks *store.TaskStore, blocks *store.BlockStore, grid *slot.Grid, clk clock.Clock, log *zap.Logger) *Coordinator {
	if clk == nil {
		clk = clock.Real{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{
		tasks:  tasks,
		blocks: blocks,
		grid:   grid,
		clock:  clk,
		log:    log,
	}
}

// State returns the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SelectTask arms id for placement. Selecting the armed task again
// cancels the selection; selecting another task switches to it.
func (c *Coordinator) SelectTask(id string) (State, error) {
	t, err := c.tasks.Get(id)
	if err != nil {
		return c.State(), err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Selecting(id) {
		c.transitionLocked(State{Mode: Idle}, "reselect")
		return c.state, nil
	}
	if t.Completed {
		return c.state, fmt.Errorf("%w: %s", ErrTaskCompleted, t.Title)
	}
	c.transitionLocked(State{Mode: SelectingSlot, ActiveTaskID: id}, "select")
	return c.state, nil
}

// ChooseSlot places the armed task at startTime on date.
//
// With no armed task, or an armed task that no longer exists, nothing
// happens. A past slot returns ErrPastSlot and keeps the selection armed.
// Every other path ends Idle: a duplicate for the date yields
// OutcomeDuplicate without error, and store rejections are returned.
func (c *Coordinator) ChooseSlot(date time.Time, startTime string) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Mode != SelectingSlot {
		return Result{Outcome: OutcomeIgnored}, nil
	}
	t, err := c.tasks.Get(c.state.ActiveTaskID)
	if err != nil {
		c.log.Debug("armed task missing, ignoring slot",
			zap.String("task_id", c.state.ActiveTaskID),
			zap.String("slot", startTime))
		return Result{Outcome: OutcomeIgnored}, nil
	}

	if err := c.grid.Validate(startTime); err != nil {
		c.transitionLocked(State{Mode: Idle}, "invalid slot")
		return Result{Outcome: OutcomeIgnored}, err
	}
	if slot.IsPast(date, startTime, c.clock.Now()) {
		return Result{Outcome: OutcomeIgnored}, fmt.Errorf("%w: %s %s", ErrPastSlot, dateutil.Format(date), startTime)
	}

	res, err := c.placeLocked(t, date, startTime)
	c.transitionLocked(State{Mode: Idle}, "slot chosen")
	return res, err
}

// DropTask places id at startTime on date without going through the
// selection. The coordinator state is left as it is.
func (c *Coordinator) DropTask(id string, date time.Time, startTime string) (Result, error) {
	t, err := c.tasks.Get(id)
	if err != nil {
		return Result{Outcome: OutcomeIgnored}, err
	}
	if err := c.grid.Validate(startTime); err != nil {
		return Result{Outcome: OutcomeIgnored}, err
	}
	if slot.IsPast(date, startTime, c.clock.Now()) {
		return Result{Outcome: OutcomeIgnored}, fmt.Errorf("%w: %s %s", ErrPastSlot, dateutil.Format(date), startTime)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.placeLocked(t, date, startTime)
}

func (c *Coordinator) placeLocked(t *task.Task, date time.Time, startTime string) (Result, error) {
	if t.Completed {
		return Result{Outcome: OutcomeIgnored}, fmt.Errorf("%w: %s", ErrTaskCompleted, t.Title)
	}
	if c.blocks.Has(t.ID, date) {
		c.log.Debug("task already scheduled on date",
			zap.String("task_id", t.ID),
			zap.String("date", dateutil.Format(date)))
		return Result{Outcome: OutcomeDuplicate}, nil
	}

	b, err := c.blocks.Create(t.ID, date, startTime, t.DurationMinutes)
	if errors.Is(err, task.ErrDuplicateBlock) {
		return Result{Outcome: OutcomeDuplicate}, nil
	}
	if err != nil {
		return Result{Outcome: OutcomeIgnored}, err
	}
	c.log.Debug("block placed",
		zap.String("task_id", t.ID),
		zap.String("block_id", b.ID),
		zap.String("date", b.DateKey()),
		zap.String("start", b.StartTime),
		zap.Int("duration", b.DurationMinutes))
	return Result{Outcome: OutcomePlaced, Block: b}, nil
}

// Cancel drops any armed selection.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Mode != Idle {
		c.transitionLocked(State{Mode: Idle}, "cancel")
	}
}

// TaskDeleted clears the selection if id was the armed task.
func (c *Coordinator) TaskDeleted(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Selecting(id) {
		c.transitionLocked(State{Mode: Idle}, "task deleted")
	}
}

func (c *Coordinator) transitionLocked(next State, reason string) {
	prev := c.state
	c.state = next
	c.log.Debug("coordinator transition",
		zap.Stringer("from", prev.Mode),
		zap.Stringer("to", next.Mode),
		zap.String("task_id", next.ActiveTaskID),
		zap.String("reason", reason))
}
