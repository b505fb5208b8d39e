package store

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/timebox/internal/clock"
	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/slot"
	"github.com/javiermolinar/timebox/internal/task"
)

// BlockStore owns the placed time blocks.
type BlockStore struct {
	mu     sync.RWMutex
	grid   *slot.Grid
	clock  clock.Clock
	newID  func() string
	blocks []*task.Block
	// offGrid holds loaded blocks whose start is not a label of grid, for
	// example after the slot interval changed. They are saved back
	// unchanged but take no part in the day grid.
	offGrid []*task.Block
	issued  map[string]bool
}

// NewBlockStore creates an empty block store validating against grid.
func NewBlockStore(grid *slot.Grid, clk clock.Clock) *BlockStore {
	if grid == nil {
		grid = slot.Default()
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &BlockStore{
		grid:   grid,
		clock:  clk,
		newID:  uuid.NewString,
		issued: make(map[string]bool),
	}
}

// Create places a block. It returns ErrDuplicateBlock if the task already
// has a block on date, ErrOverlap if the occupied slots intersect another
// block on date, and slot.ErrInvalidSlot if startTime is not on the grid.
func (s *BlockStore) Create(taskID string, date time.Time, startTime string, durationMinutes int) (*task.Block, error) {
	if err := s.grid.Validate(startTime); err != nil {
		return nil, err
	}
	if durationMinutes <= 0 || durationMinutes > task.MinutesPerDay {
		return nil, task.ErrInvalidDuration
	}

	b := &task.Block{
		TaskID:          taskID,
		Date:            dateutil.TruncateToDay(date),
		StartTime:       startTime,
		DurationMinutes: durationMinutes,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range slices.Concat(s.blocks, s.offGrid) {
		if existing.TaskID == taskID && existing.OnDate(date) {
			return nil, fmt.Errorf("%w: task %s on %s at %s",
				task.ErrDuplicateBlock, taskID, existing.DateKey(), existing.StartTime)
		}
	}
	for _, existing := range s.blocks {
		if s.grid.Overlaps(b, existing) {
			return nil, fmt.Errorf("%w: %s-%s conflicts with %s-%s on %s",
				task.ErrOverlap, b.StartTime, b.EndTime(),
				existing.StartTime, existing.EndTime(), existing.DateKey())
		}
	}

	b.ID = s.freshIDLocked()
	s.blocks = append(s.blocks, b)
	return b.Clone(), nil
}

func (s *BlockStore) freshIDLocked() string {
	for {
		id := s.newID()
		if !s.issued[id] {
			s.issued[id] = true
			return id
		}
	}
}

// Delete removes a block that has not started yet.
func (s *BlockStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", task.ErrBlockNotFound, id)
	}
	b := s.blocks[i]
	if slot.IsPast(b.Date, b.StartTime, s.clock.Now()) {
		return fmt.Errorf("%w: %s %s", task.ErrPastBlock, b.DateKey(), b.StartTime)
	}
	s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
	return nil
}

// DeleteByTask removes every block of taskID on any date, past ones
// included, and returns how many were removed.
func (s *BlockStore) DeleteByTask(taskID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.blocks) + len(s.offGrid)
	ofTask := func(b *task.Block) bool { return b.TaskID == taskID }
	s.blocks = slices.DeleteFunc(s.blocks, ofTask)
	s.offGrid = slices.DeleteFunc(s.offGrid, ofTask)
	return before - len(s.blocks) - len(s.offGrid)
}

// Get returns a copy of the block with id.
func (s *BlockStore) Get(id string) (*task.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", task.ErrBlockNotFound, id)
	}
	return s.blocks[i].Clone(), nil
}

// Has reports whether taskID already has a block on date.
func (s *BlockStore) Has(taskID string, date time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range slices.Concat(s.blocks, s.offGrid) {
		if b.TaskID == taskID && b.OnDate(date) {
			return true
		}
	}
	return false
}

// ListForDate returns the blocks on date ordered by start time.
func (s *BlockStore) ListForDate(date time.Time) []*task.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*task.Block
	for _, b := range s.blocks {
		if b.OnDate(date) {
			out = append(out, b.Clone())
		}
	}
	sortByStart(out)
	return out
}

// ForTask returns all blocks of taskID ordered by date and start time.
func (s *BlockStore) ForTask(taskID string) []*task.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*task.Block
	for _, b := range s.blocks {
		if b.TaskID == taskID {
			out = append(out, b.Clone())
		}
	}
	sortByStart(out)
	return out
}

// Replace swaps in a loaded collection. Blocks that repeat an id or a
// (task, date) pair already seen, or that have no positive duration, are
// skipped; the number skipped is returned. Blocks starting off the grid are
// kept aside, see OffGrid.
func (s *BlockStore) Replace(blocks []*task.Block) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blocks = make([]*task.Block, 0, len(blocks))
	s.offGrid = nil
	seenID := make(map[string]bool, len(blocks))
	seenDay := make(map[string]bool, len(blocks))
	skipped := 0
	for _, b := range blocks {
		if b == nil || b.ID == "" || seenID[b.ID] || b.DurationMinutes <= 0 {
			skipped++
			continue
		}
		day := b.TaskID + "|" + b.DateKey()
		if seenDay[day] {
			skipped++
			continue
		}
		seenID[b.ID] = true
		seenDay[day] = true
		s.issued[b.ID] = true
		if !s.grid.Contains(b.StartTime) {
			s.offGrid = append(s.offGrid, b.Clone())
			continue
		}
		s.blocks = append(s.blocks, b.Clone())
	}
	return skipped
}

// OffGrid returns copies of the loaded blocks whose start time is not a
// slot of the grid. They still block their task's date and are removed with
// their task.
func (s *BlockStore) OffGrid() []*task.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*task.Block, len(s.offGrid))
	for i, b := range s.offGrid {
		out[i] = b.Clone()
	}
	return out
}

// Snapshot returns copies of all blocks in insertion order, off-grid ones
// last.
func (s *BlockStore) Snapshot() []*task.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*task.Block, 0, len(s.blocks)+len(s.offGrid))
	for _, b := range slices.Concat(s.blocks, s.offGrid) {
		out = append(out, b.Clone())
	}
	return out
}

// Len returns the number of blocks.
func (s *BlockStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blocks)
}

func (s *BlockStore) indexLocked(id string) int {
	for i, b := range s.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func sortByStart(blocks []*task.Block) {
	slices.SortFunc(blocks, func(a, b *task.Block) int {
		if c := dateutil.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.StartTime, b.StartTime)
	})
}
