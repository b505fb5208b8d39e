package jsonstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/timebox/internal/task"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	created := time.UnixMilli(1709280000123)
	tasks := []*task.Task{
		{ID: "t1", Title: "Write report", Quadrant: task.QuadrantDo, DurationMinutes: 30, CreatedAt: created},
		{ID: "t2", Title: "Inbox zero", Quadrant: task.QuadrantDelete, Completed: true, DurationMinutes: 15, CreatedAt: created},
	}
	blocks := []*task.Block{
		{ID: "b1", TaskID: "t1", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local), StartTime: "14:00", DurationMinutes: 30},
	}
	require.NoError(t, s.SaveTasks(ctx, tasks))
	require.NoError(t, s.SaveBlocks(ctx, blocks))

	gotTasks, err := s.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, gotTasks, 2)
	assert.Equal(t, "t1", gotTasks[0].ID)
	assert.Equal(t, task.QuadrantDelete, gotTasks[1].Quadrant)
	assert.True(t, gotTasks[1].Completed)
	assert.True(t, gotTasks[0].CreatedAt.Equal(created))

	gotBlocks, err := s.LoadBlocks(ctx)
	require.NoError(t, err)
	require.Len(t, gotBlocks, 1)
	assert.Equal(t, "2024-03-05", gotBlocks[0].DateKey())
	assert.Equal(t, "14:00", gotBlocks[0].StartTime)
	assert.Equal(t, 30, gotBlocks[0].DurationMinutes)
}

func TestMissingFilesAreEmpty(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	tasks, err := s.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	blocks, err := s.LoadBlocks(ctx)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestRecordLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.SaveBlocks(ctx, []*task.Block{
		{ID: "b1", TaskID: "t1", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local), StartTime: "09:00", DurationMinutes: 60},
	}))

	data, err := os.ReadFile(filepath.Join(dir, BlocksFile))
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, map[string]any{
		"id":              "b1",
		"taskId":          "t1",
		"startTime":       "09:00",
		"date":            "2024-01-02",
		"durationMinutes": float64(60),
	}, raw[0])
}

func TestReadsLegacyDocuments(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tasksJSON := `[{"id":"abc","title":"Call bank","quadrant":"DELEGATE","completed":false,"durationMinutes":15,"createdAt":1704189600000}]`
	blocksJSON := `[{"id":"x1","taskId":"abc","startTime":"10:15","date":"2024-01-02","durationMinutes":15}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, TasksFile), []byte(tasksJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, BlocksFile), []byte(blocksJSON), 0o644))

	s, err := New(dir)
	require.NoError(t, err)

	tasks, err := s.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Call bank", tasks[0].Title)
	assert.Equal(t, task.QuadrantDelegate, tasks[0].Quadrant)
	assert.Equal(t, int64(1704189600000), tasks[0].CreatedAt.UnixMilli())

	blocks, err := s.LoadBlocks(ctx)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "abc", blocks[0].TaskID)
}

func TestCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TasksFile), []byte("{not json"), 0o644))

	s, err := New(dir)
	require.NoError(t, err)
	_, err = s.LoadTasks(context.Background())
	assert.ErrorContains(t, err, "decoding tasks.json")
}

func TestNoTempFilesLeft(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.SaveTasks(ctx, nil))
	require.NoError(t, s.SaveBlocks(ctx, nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{TasksFile, BlocksFile}, names)
}
