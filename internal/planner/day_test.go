package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/timebox/internal/task"
)

func TestDay_Rows(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newPlanner(t, nil)

	long, err := p.CreateTask(ctx, "deep work", task.QuadrantSchedule, 60)
	require.NoError(t, err)
	late, err := p.CreateTask(ctx, "late call", task.QuadrantDelegate, 45)
	require.NoError(t, err)

	_, err = p.DropTask(ctx, long.ID, date("2024-03-05"), "09:00")
	require.NoError(t, err)
	_, err = p.DropTask(ctx, late.ID, date("2024-03-05"), "23:30")
	require.NoError(t, err)

	view := p.Day(date("2024-03-05"))
	require.Len(t, view.Rows, 72)
	assert.False(t, view.IsToday)
	assert.Equal(t, "08:00", view.Rows[view.Focus].Label)
	assert.Equal(t, 105, view.ScheduledMinutes)

	byLabel := make(map[string]Row)
	for _, r := range view.Rows {
		byLabel[r.Label] = r
	}

	first := byLabel["09:00"]
	require.NotNil(t, first.Block)
	assert.Equal(t, "deep work", first.Task.Title)
	assert.Equal(t, 4, first.Span)
	assert.False(t, first.Covered)

	for _, l := range []string{"09:15", "09:30", "09:45"} {
		assert.True(t, byLabel[l].Covered, l)
		assert.Nil(t, byLabel[l].Block, l)
	}
	assert.False(t, byLabel["10:00"].Covered)

	assert.Equal(t, 2, byLabel["23:30"].Span, "span is clipped to the grid")
	assert.True(t, byLabel["23:45"].Covered)
}

func TestDay_TodayPastAndFocus(t *testing.T) {
	p, clk, _ := newPlanner(t, nil)
	clk.Set(date("2024-03-04").Add(14*time.Hour + 10*time.Minute))

	view := p.Day(clk.Now())
	assert.True(t, view.IsToday)
	assert.Equal(t, "14:00", view.Rows[view.Focus].Label)

	for _, r := range view.Rows {
		want := r.Label <= "14:10"
		assert.Equal(t, want, r.Past, r.Label)
	}
}
