package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/timebox/internal/clock"
	"github.com/javiermolinar/timebox/internal/task"
)

var baseTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

func newTaskStore(t *testing.T) (*TaskStore, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(baseTime)
	return NewTaskStore(clk), clk
}

func TestTaskStore_Create(t *testing.T) {
	s, _ := newTaskStore(t)

	got, err := s.Create("  Write report  ", task.QuadrantDo, 30)
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, task.QuadrantDo, got.Quadrant)
	assert.Equal(t, 30, got.DurationMinutes)
	assert.False(t, got.Completed)
	assert.Equal(t, baseTime, got.CreatedAt)
	assert.Equal(t, 1, s.Len())
}

func TestTaskStore_CreateValidation(t *testing.T) {
	s, _ := newTaskStore(t)

	tests := []struct {
		name     string
		title    string
		quadrant task.Quadrant
		duration int
		want     error
	}{
		{"blank title", "   ", task.QuadrantDo, 30, task.ErrEmptyTitle},
		{"unknown quadrant", "x", task.Quadrant("LATER"), 30, task.ErrInvalidQuadrant},
		{"zero duration", "x", task.QuadrantDo, 0, task.ErrInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(tt.title, tt.quadrant, tt.duration)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, 0, s.Len(), "failed creates must not add tasks")
}

func TestTaskStore_NewestFirst(t *testing.T) {
	s, clk := newTaskStore(t)

	first, err := s.Create("first", task.QuadrantDo, 30)
	require.NoError(t, err)
	clk.Advance(time.Minute)
	second, err := s.Create("second", task.QuadrantDo, 30)
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, second.ID, snap[0].ID)
	assert.Equal(t, first.ID, snap[1].ID)
}

func TestTaskStore_IDsNeverReused(t *testing.T) {
	s, _ := newTaskStore(t)
	ids := []string{"a", "a", "b", "b", "c"}
	s.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	t1, err := s.Create("one", task.QuadrantDo, 15)
	require.NoError(t, err)
	require.NoError(t, s.Delete(t1.ID))

	t2, err := s.Create("two", task.QuadrantDo, 15)
	require.NoError(t, err)
	t3, err := s.Create("three", task.QuadrantDo, 15)
	require.NoError(t, err)

	assert.Equal(t, "a", t1.ID)
	assert.Equal(t, "b", t2.ID, "a deleted id must not be handed out again")
	assert.Equal(t, "c", t3.ID)
}

func TestTaskStore_ToggleComplete(t *testing.T) {
	s, _ := newTaskStore(t)
	created, err := s.Create("task", task.QuadrantSchedule, 60)
	require.NoError(t, err)

	toggled, err := s.ToggleComplete(created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = s.ToggleComplete(created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	_, err = s.ToggleComplete("missing")
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestTaskStore_DeleteMissing(t *testing.T) {
	s, _ := newTaskStore(t)
	assert.ErrorIs(t, s.Delete("missing"), task.ErrTaskNotFound)
}

func TestTaskStore_ReturnsCopies(t *testing.T) {
	s, _ := newTaskStore(t)
	created, err := s.Create("task", task.QuadrantDo, 30)
	require.NoError(t, err)

	created.Title = "changed"
	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "task", got.Title)
}

func TestTaskStore_ListOrder(t *testing.T) {
	s, clk := newTaskStore(t)

	mk := func(title string, q task.Quadrant) *task.Task {
		clk.Advance(time.Minute)
		tk, err := s.Create(title, q, 30)
		require.NoError(t, err)
		return tk
	}
	mk("eliminate", task.QuadrantDelete)
	mk("do old", task.QuadrantDo)
	mk("schedule", task.QuadrantSchedule)
	do2 := mk("do new", task.QuadrantDo)
	_, err := s.ToggleComplete(do2.ID)
	require.NoError(t, err)

	var titles []string
	for _, tk := range s.List() {
		titles = append(titles, tk.Title)
	}
	assert.Equal(t, []string{"do old", "schedule", "eliminate", "do new"}, titles)
}

func TestTaskStore_Progress(t *testing.T) {
	s, _ := newTaskStore(t)

	c, total, pct := s.Progress()
	assert.Equal(t, []int{0, 0, 0}, []int{c, total, pct})

	var ids []string
	for i := range 3 {
		tk, err := s.Create(fmt.Sprintf("t%d", i), task.QuadrantDo, 15)
		require.NoError(t, err)
		ids = append(ids, tk.ID)
	}
	_, err := s.ToggleComplete(ids[0])
	require.NoError(t, err)

	c, total, pct = s.Progress()
	assert.Equal(t, 1, c)
	assert.Equal(t, 3, total)
	assert.Equal(t, 33, pct)

	_, err = s.ToggleComplete(ids[1])
	require.NoError(t, err)
	_, _, pct = s.Progress()
	assert.Equal(t, 67, pct)
}

func TestTaskStore_Replace(t *testing.T) {
	s, _ := newTaskStore(t)
	s.newID = func() string { return "loaded-1" }

	skipped := s.Replace([]*task.Task{
		{ID: "loaded-1", Title: "a", Quadrant: task.QuadrantDo, DurationMinutes: 30},
		{ID: "loaded-1", Title: "dup", Quadrant: task.QuadrantDo, DurationMinutes: 30},
		{ID: "", Title: "no id", Quadrant: task.QuadrantDo, DurationMinutes: 30},
		{ID: "loaded-2", Title: "b", Quadrant: task.QuadrantDo, DurationMinutes: 30},
	})
	assert.Equal(t, 2, skipped)
	assert.Equal(t, 2, s.Len())

	// Loaded ids are reserved for new tasks too.
	ids := []string{"loaded-1", "loaded-2", "fresh"}
	s.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	tk, err := s.Create("new", task.QuadrantDo, 15)
	require.NoError(t, err)
	assert.Equal(t, "fresh", tk.ID)
}

func TestTaskStore_ConcurrentCreate(t *testing.T) {
	s, _ := newTaskStore(t)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(fmt.Sprintf("task %d", i), task.QuadrantDo, 15)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, tk := range s.Snapshot() {
		assert.False(t, seen[tk.ID], "duplicate id %s", tk.ID)
		seen[tk.ID] = true
	}
	assert.Len(t, seen, 50)
}
