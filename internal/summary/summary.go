// Package summary aggregates scheduled time into day and week reports.
package summary

import (
	"github.com/javiermolinar/timebox/internal/task"
)

// QuadrantMinutes holds scheduled minutes per quadrant.
type QuadrantMinutes map[task.Quadrant]int

// Total sums all quadrants.
func (q QuadrantMinutes) Total() int {
	total := 0
	for _, m := range q {
		total += m
	}
	return total
}

// Entry is a block together with the task it places.
type Entry struct {
	Block *task.Block
	Task  *task.Task // nil when the task no longer exists
}

// End returns the block's end time.
func (e Entry) End() string {
	return e.Block.EndTime()
}

func indexTasks(tasks []*task.Task) map[string]*task.Task {
	byID := make(map[string]*task.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	return byID
}

func addMinutes(q QuadrantMinutes, t *task.Task, minutes int) {
	if t == nil {
		return
	}
	q[t.Quadrant] += minutes
}

// percent rounds part/total to the nearest whole percent.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return (part*100 + total/2) / total
}
