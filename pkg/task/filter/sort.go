package filter

import (
	"sort"

	"github.com/td0m/taskflow/pkg/task"
	"github.com/td0m/taskflow/pkg/task/date"
)

// Compare orders incomplete tasks first, then by priority from high to low,
// then by due day with undated tasks last. It returns a negative number when
// a goes before b, a positive one when it goes after and 0 when they tie.
func Compare(a, b task.Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return rb - ra
	}
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	}
	return date.DaysFrom(*a.DueDate, *b.DueDate)
}

// Sort orders tasks in place, ties keep their relative order
func Sort(tasks []task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return Compare(tasks[i], tasks[j]) < 0
	})
}

// Sorted returns a sorted copy
func Sorted(tasks []task.Task) []task.Task {
	out := append([]task.Task{}, tasks...)
	Sort(out)
	return out
}
