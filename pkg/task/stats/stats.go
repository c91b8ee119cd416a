// Package stats computes the counters shown next to the task list.
package stats

import (
	"math"
	"time"

	"github.com/td0m/taskflow/pkg/task"
	"github.com/td0m/taskflow/pkg/task/date"
)

type Summary struct {
	Total     int
	Completed int
	// DueToday and Overdue only count incomplete tasks
	DueToday int
	Overdue  int
	// CompletionRate is a rounded percentage, 0 for an empty list
	CompletionRate int
}

func Summarize(tasks []task.Task, now time.Time) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		if t.DueDate == nil {
			continue
		}
		switch {
		case date.IsToday(*t.DueDate, now):
			s.DueToday++
		case date.IsPast(*t.DueDate, now):
			s.Overdue++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// Counts are the badges of the quick filters and categories
type Counts struct {
	All       int
	Today     int
	Upcoming  int
	Completed int
	// ByCategory counts incomplete tasks, every given category has an entry
	ByCategory map[task.ID]int
}

// Count is computed over the full task list, regardless of the active filter
func Count(tasks []task.Task, categories []task.Category, now time.Time) Counts {
	c := Counts{
		All:        len(tasks),
		ByCategory: make(map[task.ID]int, len(categories)),
	}
	for _, cat := range categories {
		c.ByCategory[cat.ID] = 0
	}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
			continue
		}
		if t.DueDate != nil {
			switch {
			case date.IsToday(*t.DueDate, now):
				c.Today++
			case date.IsUpcoming(*t.DueDate, now):
				c.Upcoming++
			}
		}
		if t.CategoryID != nil {
			if _, ok := c.ByCategory[*t.CategoryID]; ok {
				c.ByCategory[*t.CategoryID]++
			}
		}
	}
	return c
}
