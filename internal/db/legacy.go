package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/javiermolinar/timebox/internal/task"
)

// LegacyMigratedKey is the meta flag set once the legacy store was copied.
const LegacyMigratedKey = "legacy_migrated_v1"

// MigrateLegacy copies tasks and blocks from legacy into the database the
// first time it runs and then sets LegacyMigratedKey. Data is copied only
// when the database holds no tasks yet, so a user who started fresh is not
// overwritten. Tasks, blocks and the flag are written in one transaction; a
// failed run leaves the database as it was. It reports whether anything was
// copied.
func (s *SQLite) MigrateLegacy(ctx context.Context, legacy task.Repository) (bool, error) {
	if _, done, err := s.Meta(ctx, LegacyMigratedKey); err != nil || done {
		return false, err
	}

	tasks, err := legacy.LoadTasks(ctx)
	if err != nil {
		return false, fmt.Errorf("reading legacy tasks: %w", err)
	}
	blocks, err := legacy.LoadBlocks(ctx)
	if err != nil {
		return false, fmt.Errorf("reading legacy blocks: %w", err)
	}
	blocks = uniqueByTaskDate(blocks)

	copied := false
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		var existing int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&existing); err != nil {
			return fmt.Errorf("counting tasks: %w", err)
		}

		if existing == 0 && (len(tasks) > 0 || len(blocks) > 0) {
			if err := replaceTasks(ctx, tx, tasks); err != nil {
				return err
			}
			if err := replaceBlocks(ctx, tx, blocks); err != nil {
				return err
			}
			copied = true
		}

		return setMeta(ctx, tx, LegacyMigratedKey, time.Now().UTC().Format(time.RFC3339))
	})
	if err != nil {
		return false, fmt.Errorf("migrating legacy data: %w", err)
	}
	return copied, nil
}

// uniqueByTaskDate keeps the first block of each (task, date) pair.
func uniqueByTaskDate(blocks []*task.Block) []*task.Block {
	seen := make(map[string]bool, len(blocks))
	out := blocks[:0:0]
	for _, b := range blocks {
		key := b.TaskID + "|" + b.DateKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, b)
	}
	return out
}
