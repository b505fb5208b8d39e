// Package planner is the application controller. It owns the task and
// block stores, the scheduling coordinator and the persistence port, and
// saves after every mutation.
package planner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/timebox/internal/clock"
	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/slot"
	"github.com/javiermolinar/timebox/internal/store"
	"github.com/javiermolinar/timebox/internal/task"
)

// Planner holds the whole application state.
type Planner struct {
	repo   task.Repository
	grid   *slot.Grid
	clock  clock.Clock
	log    *zap.Logger
	tasks  *store.TaskStore
	blocks *store.BlockStore
	coord  *scheduler.Coordinator
}

// New creates a planner. repo may be nil, in which case nothing is
// persisted.
func New(repo task.Repository, grid *slot.Grid, clk clock.Clock, log *zap.Logger) *Planner {
	if grid == nil {
		grid = slot.Default()
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	tasks := store.NewTaskStore(clk)
	blocks := store.NewBlockStore(grid, clk)
	return &Planner{
		repo:   repo,
		grid:   grid,
		clock:  clk,
		log:    log,
		tasks:  tasks,
		blocks: blocks,
		coord:  scheduler.NewCoordinator(tasks, blocks, grid, clk, log.Named("scheduler")),
	}
}

// Load reads both collections from the repository. It is meant to run
// once at startup; errors are returned so startup can fail loudly.
func (p *Planner) Load(ctx context.Context) error {
	if p.repo == nil {
		return nil
	}

	tasks, err := p.repo.LoadTasks(ctx)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	blocks, err := p.repo.LoadBlocks(ctx)
	if err != nil {
		return fmt.Errorf("loading blocks: %w", err)
	}

	if skipped := p.tasks.Replace(tasks); skipped > 0 {
		p.log.Warn("skipped invalid stored tasks", zap.Int("count", skipped))
	}
	if skipped := p.blocks.Replace(blocks); skipped > 0 {
		p.log.Warn("skipped invalid stored blocks", zap.Int("count", skipped))
	}
	for _, b := range p.blocks.OffGrid() {
		p.log.Warn("stored block does not start on a grid slot; hidden until the grid matches",
			zap.String("block", b.ID),
			zap.String("date", b.DateKey()),
			zap.String("start", b.StartTime))
	}
	p.log.Info("planner loaded",
		zap.Int("tasks", p.tasks.Len()),
		zap.Int("blocks", p.blocks.Len()))
	return nil
}

// Grid returns the slot grid.
func (p *Planner) Grid() *slot.Grid {
	return p.grid
}

// Now returns the planner clock's current time.
func (p *Planner) Now() time.Time {
	return p.clock.Now()
}

// CreateTask adds a task and saves.
func (p *Planner) CreateTask(ctx context.Context, title string, quadrant task.Quadrant, durationMinutes int) (*task.Task, error) {
	t, err := p.tasks.Create(title, quadrant, durationMinutes)
	if err != nil {
		return nil, err
	}
	p.log.Debug("task created",
		zap.String("task_id", t.ID),
		zap.String("quadrant", string(t.Quadrant)),
		zap.Int("duration", t.DurationMinutes))
	p.saveTasks(ctx)
	return t, nil
}

// ToggleComplete flips a task's completed flag and saves.
func (p *Planner) ToggleComplete(ctx context.Context, id string) (*task.Task, error) {
	t, err := p.tasks.ToggleComplete(id)
	if err != nil {
		return nil, err
	}
	p.saveTasks(ctx)
	return t, nil
}

// DeleteTask removes a task with all of its blocks and clears the
// selection if it was armed.
func (p *Planner) DeleteTask(ctx context.Context, id string) error {
	if err := p.tasks.Delete(id); err != nil {
		return err
	}
	removed := p.blocks.DeleteByTask(id)
	p.coord.TaskDeleted(id)
	p.log.Debug("task deleted", zap.String("task_id", id), zap.Int("blocks_removed", removed))

	p.saveTasks(ctx)
	if removed > 0 {
		p.saveBlocks(ctx)
	}
	return nil
}

// SelectTask arms or disarms a task for placement.
func (p *Planner) SelectTask(id string) (scheduler.State, error) {
	return p.coord.SelectTask(id)
}

// ChooseSlot places the armed task and saves when a block was created.
func (p *Planner) ChooseSlot(ctx context.Context, date time.Time, startTime string) (scheduler.Result, error) {
	res, err := p.coord.ChooseSlot(date, startTime)
	if err == nil && res.Outcome == scheduler.OutcomePlaced {
		p.saveBlocks(ctx)
	}
	return res, err
}

// DropTask places id directly and saves when a block was created.
func (p *Planner) DropTask(ctx context.Context, id string, date time.Time, startTime string) (scheduler.Result, error) {
	res, err := p.coord.DropTask(id, date, startTime)
	if err == nil && res.Outcome == scheduler.OutcomePlaced {
		p.saveBlocks(ctx)
	}
	return res, err
}

// CancelSelection returns the coordinator to idle.
func (p *Planner) CancelSelection() {
	p.coord.Cancel()
}

// DeleteBlock removes a block that has not started yet.
func (p *Planner) DeleteBlock(ctx context.Context, id string) error {
	if err := p.blocks.Delete(id); err != nil {
		return err
	}
	p.saveBlocks(ctx)
	return nil
}

// Tasks returns the backlog in display order.
func (p *Planner) Tasks() []*task.Task {
	return p.tasks.List()
}

// Task returns one task.
func (p *Planner) Task(id string) (*task.Task, error) {
	return p.tasks.Get(id)
}

// Blocks returns every block, including loaded ones that start off the
// grid.
func (p *Planner) Blocks() []*task.Block {
	return p.blocks.Snapshot()
}

// BlocksForDate returns the blocks on date ordered by start time.
func (p *Planner) BlocksForDate(date time.Time) []*task.Block {
	return p.blocks.ListForDate(date)
}

// BlocksForTask returns all blocks of a task.
func (p *Planner) BlocksForTask(id string) []*task.Block {
	return p.blocks.ForTask(id)
}

// State returns the coordinator state.
func (p *Planner) State() scheduler.State {
	return p.coord.State()
}

// IsScheduled reports whether the task has a block on date.
func (p *Planner) IsScheduled(taskID string, date time.Time) bool {
	return p.blocks.Has(taskID, date)
}

// Progress is the completed share of the backlog.
type Progress struct {
	Completed int
	Total     int
	Percent   int
}

// Progress returns the completion counts.
func (p *Planner) Progress() Progress {
	c, total, pct := p.tasks.Progress()
	return Progress{Completed: c, Total: total, Percent: pct}
}

func (p *Planner) saveTasks(ctx context.Context) {
	if p.repo == nil {
		return
	}
	if err := p.repo.SaveTasks(ctx, p.tasks.Snapshot()); err != nil {
		p.log.Warn("saving tasks failed; changes are kept in memory", zap.Error(err))
	}
}

func (p *Planner) saveBlocks(ctx context.Context) {
	if p.repo == nil {
		return
	}
	if err := p.repo.SaveBlocks(ctx, p.blocks.Snapshot()); err != nil {
		p.log.Warn("saving blocks failed; changes are kept in memory", zap.Error(err))
	}
}
