// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/task"
)

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ task.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// LoadTasks returns all tasks in saved order.
func (s *SQLite) LoadTasks(ctx context.Context) ([]*task.Task, error) {
	query := `
		SELECT id, title, quadrant, completed, duration, created_at
		FROM tasks
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		var (
			t         task.Task
			quadrant  string
			createdAt string
		)
		if err := rows.Scan(&t.ID, &t.Title, &quadrant, &t.Completed, &t.DurationMinutes, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		t.Quadrant = task.Quadrant(quadrant)
		t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
		tasks = append(tasks, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

// LoadBlocks returns all time blocks in saved order.
func (s *SQLite) LoadBlocks(ctx context.Context) ([]*task.Block, error) {
	query := `
		SELECT id, task_id, date, start_time, duration
		FROM blocks
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying blocks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var blocks []*task.Block
	for rows.Next() {
		var (
			b    task.Block
			date string
		)
		if err := rows.Scan(&b.ID, &b.TaskID, &date, &b.StartTime, &b.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scanning block: %w", err)
		}
		b.Date, err = parseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parsing block date: %w", err)
		}
		blocks = append(blocks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blocks: %w", err)
	}

	return blocks, nil
}

// SaveTasks replaces the stored tasks in a single transaction.
func (s *SQLite) SaveTasks(ctx context.Context, tasks []*task.Task) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return replaceTasks(ctx, tx, tasks)
	})
}

// SaveBlocks replaces the stored time blocks in a single transaction.
func (s *SQLite) SaveBlocks(ctx context.Context, blocks []*task.Block) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return replaceBlocks(ctx, tx, blocks)
	})
}

// inTx runs fn in a transaction that is committed only if fn succeeds.
func (s *SQLite) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func replaceTasks(ctx context.Context, tx *sql.Tx, tasks []*task.Task) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, position, title, quadrant, completed, duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, t := range tasks {
		_, err := stmt.ExecContext(ctx,
			t.ID,
			i,
			t.Title,
			string(t.Quadrant),
			t.Completed,
			t.DurationMinutes,
			t.CreatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("inserting task %s: %w", t.ID, err)
		}
	}
	return nil
}

func replaceBlocks(ctx context.Context, tx *sql.Tx, blocks []*task.Block) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM blocks`); err != nil {
		return fmt.Errorf("clearing blocks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO blocks (id, position, task_id, date, start_time, duration)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, b := range blocks {
		_, err := stmt.ExecContext(ctx,
			b.ID,
			i,
			b.TaskID,
			b.DateKey(),
			b.StartTime,
			b.DurationMinutes,
		)
		if err != nil {
			return fmt.Errorf("inserting block %s: %w", b.ID, err)
		}
	}
	return nil
}

// Meta returns the value stored under key. ok is false if it is unset.
func (s *SQLite) Meta(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading meta %s: %w", key, err)
	}
	return value, true, nil
}

// SetMeta stores value under key.
func (s *SQLite) SetMeta(ctx context.Context, key, value string) error {
	return setMeta(ctx, s.db, key, value)
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func setMeta(ctx context.Context, e execer, key, value string) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("writing meta %s: %w", key, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values are read as local midnight.
func parseDate(s string) (time.Time, error) {
	if t, err := dateutil.ParseDate(s); err == nil {
		return t, nil
	}

	// DATE columns can come back as "2006-01-02T00:00:00Z"; keep the
	// calendar date and read it as local midnight.
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := dateutil.ParseDate(s[:10]); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}
