package db

import (
	"context"
	"testing"

	"github.com/javiermolinar/timebox/internal/task"
)

// staticRepo serves fixed collections and fails on writes.
type staticRepo struct {
	tasks  []*task.Task
	blocks []*task.Block
}

func (r *staticRepo) LoadTasks(context.Context) ([]*task.Task, error)   { return r.tasks, nil }
func (r *staticRepo) LoadBlocks(context.Context) ([]*task.Block, error) { return r.blocks, nil }
func (r *staticRepo) SaveTasks(context.Context, []*task.Task) error     { panic("read only") }
func (r *staticRepo) SaveBlocks(context.Context, []*task.Block) error   { panic("read only") }
func (r *staticRepo) Close() error                                      { return nil }

func TestMigrateLegacy(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	legacy := &staticRepo{
		tasks: sampleTasks(),
		blocks: []*task.Block{
			{ID: "b1", TaskID: "t-new", Date: localDate(2025, 1, 9), StartTime: "09:00", DurationMinutes: 30},
			{ID: "b2", TaskID: "t-new", Date: localDate(2025, 1, 9), StartTime: "10:00", DurationMinutes: 30},
		},
	}

	copied, err := repo.MigrateLegacy(ctx, legacy)
	if err != nil {
		t.Fatalf("MigrateLegacy failed: %v", err)
	}
	if !copied {
		t.Fatal("expected first migration to copy data")
	}

	tasks, _ := repo.LoadTasks(ctx)
	blocks, _ := repo.LoadBlocks(ctx)
	if len(tasks) != 2 {
		t.Errorf("expected 2 migrated tasks, got %d", len(tasks))
	}
	if len(blocks) != 1 || blocks[0].ID != "b1" {
		t.Errorf("expected first block of the duplicate pair, got %+v", blocks)
	}

	if _, ok, _ := repo.Meta(ctx, LegacyMigratedKey); !ok {
		t.Error("expected migration flag to be set")
	}

	copied, err = repo.MigrateLegacy(ctx, &staticRepo{tasks: sampleTasks()[:1]})
	if err != nil {
		t.Fatalf("second MigrateLegacy failed: %v", err)
	}
	if copied {
		t.Error("migration must run only once")
	}
}

func TestMigrateLegacy_KeepsExistingData(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveTasks(ctx, sampleTasks()[1:]); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}

	copied, err := repo.MigrateLegacy(ctx, &staticRepo{tasks: sampleTasks()})
	if err != nil {
		t.Fatalf("MigrateLegacy failed: %v", err)
	}
	if copied {
		t.Error("existing data must not be overwritten")
	}
	tasks, _ := repo.LoadTasks(ctx)
	if len(tasks) != 1 {
		t.Errorf("expected 1 task, got %d", len(tasks))
	}
}

func TestMigrateLegacy_FailedRunCanBeRetried(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	broken := &staticRepo{
		tasks: sampleTasks(),
		blocks: []*task.Block{
			{ID: "b1", TaskID: "t-new", Date: localDate(2025, 1, 9), StartTime: "09:00", DurationMinutes: 0},
		},
	}
	if _, err := repo.MigrateLegacy(ctx, broken); err == nil {
		t.Fatal("expected zero-minute block to fail the migration")
	}

	tasks, _ := repo.LoadTasks(ctx)
	if len(tasks) != 0 {
		t.Fatalf("failed migration left %d task(s) behind", len(tasks))
	}
	if _, ok, _ := repo.Meta(ctx, LegacyMigratedKey); ok {
		t.Fatal("failed migration must not set the flag")
	}

	fixed := &staticRepo{
		tasks: sampleTasks(),
		blocks: []*task.Block{
			{ID: "b1", TaskID: "t-new", Date: localDate(2025, 1, 9), StartTime: "09:00", DurationMinutes: 30},
		},
	}
	copied, err := repo.MigrateLegacy(ctx, fixed)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !copied {
		t.Fatal("retry should copy the legacy data")
	}

	blocks, _ := repo.LoadBlocks(ctx)
	if len(blocks) != 1 || blocks[0].ID != "b1" {
		t.Errorf("expected block b1 after retry, got %+v", blocks)
	}
	if _, ok, _ := repo.Meta(ctx, LegacyMigratedKey); !ok {
		t.Error("expected migration flag after retry")
	}
}
