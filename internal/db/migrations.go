package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS tasks (
			id         TEXT PRIMARY KEY,
			position   INTEGER NOT NULL,
			title      TEXT NOT NULL,
			quadrant   TEXT NOT NULL CHECK(quadrant IN ('DO', 'SCHEDULE', 'DELEGATE', 'DELETE')),
			completed  INTEGER NOT NULL DEFAULT 0,
			duration   INTEGER NOT NULL CHECK(duration > 0),
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS blocks (
			id         TEXT PRIMARY KEY,
			position   INTEGER NOT NULL,
			task_id    TEXT NOT NULL,
			date       TEXT NOT NULL,
			start_time TEXT NOT NULL,
			duration   INTEGER NOT NULL CHECK(duration > 0),
			UNIQUE(task_id, date)
		);

		CREATE INDEX IF NOT EXISTS idx_blocks_date ON blocks(date);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
