package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/javiermolinar/timebox/internal/clock"
	"github.com/javiermolinar/timebox/internal/task"
)

// TaskStore owns the task collection. Tasks are kept newest first.
type TaskStore struct {
	mu     sync.RWMutex
	clock  clock.Clock
	newID  func() string
	tasks  []*task.Task
	issued map[string]bool // every id ever created or loaded
}

// NewTaskStore creates an empty task store.
func NewTaskStore(clk clock.Clock) *TaskStore {
	if clk == nil {
		clk = clock.Real{}
	}
	return &TaskStore{
		clock:  clk,
		newID:  uuid.NewString,
		issued: make(map[string]bool),
	}
}

// Create validates and adds a new incomplete task.
func (s *TaskStore) Create(title string, quadrant task.Quadrant, durationMinutes int) (*task.Task, error) {
	t, err := task.New(title, quadrant, durationMinutes, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.freshIDLocked()
	s.tasks = append([]*task.Task{t}, s.tasks...)
	return t.Clone(), nil
}

func (s *TaskStore) freshIDLocked() string {
	for {
		id := s.newID()
		if !s.issued[id] {
			s.issued[id] = true
			return id
		}
	}
}

// Get returns a copy of the task with id.
func (s *TaskStore) Get(id string) (*task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	return s.tasks[i].Clone(), nil
}

// ToggleComplete flips the completed flag and returns the updated task.
func (s *TaskStore) ToggleComplete(id string) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i].Clone(), nil
}

// Delete removes the task. Its id stays reserved.
func (s *TaskStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// List returns copies of all tasks in backlog order.
func (s *TaskStore) List() []*task.Task {
	out := s.Snapshot()
	task.Sort(out)
	return out
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Progress returns completed and total counts and the rounded percentage.
func (s *TaskStore) Progress() (completed, total, percent int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total = len(s.tasks)
	for _, t := range s.tasks {
		if t.Completed {
			completed++
		}
	}
	if total == 0 {
		return 0, 0, 0
	}
	percent = (completed*100 + total/2) / total
	return completed, total, percent
}

// Replace swaps in a loaded collection, keeping its order. Tasks with an
// empty or repeated id are skipped; the number skipped is returned.
func (s *TaskStore) Replace(tasks []*task.Task) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = make([]*task.Task, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	skipped := 0
	for _, t := range tasks {
		if t == nil || t.ID == "" || seen[t.ID] {
			skipped++
			continue
		}
		seen[t.ID] = true
		s.issued[t.ID] = true
		s.tasks = append(s.tasks, t.Clone())
	}
	return skipped
}

// Snapshot returns copies of all tasks in stored (newest first) order.
func (s *TaskStore) Snapshot() []*task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*task.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (s *TaskStore) indexLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
