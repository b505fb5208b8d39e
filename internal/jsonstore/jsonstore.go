// Package jsonstore persists tasks and blocks as two JSON documents in a
// data directory. It is the older storage layout and the source of the
// one-time migration into SQLite.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/task"
)

// File names inside the data directory.
const (
	TasksFile  = "tasks.json"
	BlocksFile = "blocks.json"
)

type taskRecord struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Quadrant        string `json:"quadrant"`
	Completed       bool   `json:"completed"`
	DurationMinutes int    `json:"durationMinutes"`
	CreatedAt       int64  `json:"createdAt"` // unix milliseconds
}

type blockRecord struct {
	ID              string `json:"id"`
	TaskID          string `json:"taskId"`
	StartTime       string `json:"startTime"`
	Date            string `json:"date"` // YYYY-MM-DD
	DurationMinutes int    `json:"durationMinutes"`
}

// Store implements task.Repository on JSON files.
type Store struct {
	mu  sync.Mutex
	dir string
}

var _ task.Repository = (*Store)(nil)

// New opens a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// LoadTasks reads tasks.json. A missing file is an empty collection.
func (s *Store) LoadTasks(ctx context.Context) ([]*task.Task, error) {
	var records []taskRecord
	if err := s.read(ctx, TasksFile, &records); err != nil {
		return nil, err
	}

	tasks := make([]*task.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, &task.Task{
			ID:              r.ID,
			Title:           r.Title,
			Quadrant:        task.Quadrant(r.Quadrant),
			Completed:       r.Completed,
			DurationMinutes: r.DurationMinutes,
			CreatedAt:       time.UnixMilli(r.CreatedAt),
		})
	}
	return tasks, nil
}

// LoadBlocks reads blocks.json. A missing file is an empty collection.
func (s *Store) LoadBlocks(ctx context.Context) ([]*task.Block, error) {
	var records []blockRecord
	if err := s.read(ctx, BlocksFile, &records); err != nil {
		return nil, err
	}

	blocks := make([]*task.Block, 0, len(records))
	for _, r := range records {
		date, err := dateutil.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", r.ID, err)
		}
		blocks = append(blocks, &task.Block{
			ID:              r.ID,
			TaskID:          r.TaskID,
			Date:            date,
			StartTime:       r.StartTime,
			DurationMinutes: r.DurationMinutes,
		})
	}
	return blocks, nil
}

// SaveTasks overwrites tasks.json.
func (s *Store) SaveTasks(ctx context.Context, tasks []*task.Task) error {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, taskRecord{
			ID:              t.ID,
			Title:           t.Title,
			Quadrant:        string(t.Quadrant),
			Completed:       t.Completed,
			DurationMinutes: t.DurationMinutes,
			CreatedAt:       t.CreatedAt.UnixMilli(),
		})
	}
	return s.write(ctx, TasksFile, records)
}

// SaveBlocks overwrites blocks.json.
func (s *Store) SaveBlocks(ctx context.Context, blocks []*task.Block) error {
	records := make([]blockRecord, 0, len(blocks))
	for _, b := range blocks {
		records = append(records, blockRecord{
			ID:              b.ID,
			TaskID:          b.TaskID,
			StartTime:       b.StartTime,
			Date:            b.DateKey(),
			DurationMinutes: b.DurationMinutes,
		})
	}
	return s.write(ctx, BlocksFile, records)
}

// Close is a no-op; files are not held open.
func (s *Store) Close() error {
	return nil
}

func (s *Store) read(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

// write replaces name atomically through a temp file and rename.
func (s *Store) write(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}
