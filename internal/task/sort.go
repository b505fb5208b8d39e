package task

import "slices"

// Sort orders tasks for the backlog: incomplete before completed, then by
// quadrant priority, then newest first. Equal keys keep their input order.
func Sort(tasks []*Task) {
	slices.SortStableFunc(tasks, Compare)
}

// Compare is the backlog ordering used by Sort.
func Compare(a, b *Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if pa, pb := a.Quadrant.Priority(), b.Quadrant.Priority(); pa != pb {
		return pa - pb
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}
