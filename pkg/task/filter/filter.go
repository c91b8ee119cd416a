// Package filter derives the visible subset of tasks and their display order.
package filter

import (
	"strconv"
	"time"

	"github.com/td0m/taskflow/pkg/task"
	"github.com/td0m/taskflow/pkg/task/date"
)

// Quick filters, shared by the category option and the tabs of the terminal ui.
// Any other category value is a decimal category id.
const (
	All       = "all"
	Today     = "today"
	Upcoming  = "upcoming"
	Completed = "completed"
)

// Date buckets, in addition to All and Today
const (
	Tomorrow = "tomorrow"
	ThisWeek = "this-week"
	Overdue  = "overdue"
	NoDate   = "no-date"
)

// DateBuckets lists every date filter in display order
var DateBuckets = []string{All, Today, Tomorrow, ThisWeek, Overdue, NoDate}

// Options selects tasks. Empty values behave like All.
type Options struct {
	Category string
	Search   string
	Priority string
	Date     string
}

// Default passes every task
func Default() Options {
	return Options{Category: All, Priority: All, Date: All}
}

// Predicate reports whether a task is kept
type Predicate func(task.Task) bool

// Apply keeps the tasks passing every option, in their original order.
// Day comparisons use now's location.
func Apply(tasks []task.Task, o Options, now time.Time) []task.Task {
	predicates := []Predicate{
		ByCategory(o.Category, now),
		BySearch(o.Search),
		ByPriority(o.Priority),
		ByDate(o.Date, now),
	}
	out := []task.Task{}
next:
	for _, t := range tasks {
		for _, p := range predicates {
			if !p(t) {
				continue next
			}
		}
		out = append(out, t)
	}
	return out
}

func pass(task.Task) bool {
	return true
}

func reject(task.Task) bool {
	return false
}

func ByCategory(category string, now time.Time) Predicate {
	switch category {
	case "", All:
		return pass
	case Today:
		return func(t task.Task) bool {
			return t.DueDate != nil && date.IsToday(*t.DueDate, now)
		}
	case Upcoming:
		return func(t task.Task) bool {
			return t.DueDate != nil && date.IsUpcoming(*t.DueDate, now)
		}
	case Completed:
		return func(t task.Task) bool {
			return t.Completed
		}
	}
	id, err := strconv.Atoi(category)
	if err != nil {
		return reject
	}
	return func(t task.Task) bool {
		return t.InCategory(task.ID(id))
	}
}

// BySearch is a case insensitive match on title and description
func BySearch(query string) Predicate {
	if query == "" {
		return pass
	}
	return func(t task.Task) bool {
		return t.Matches(query)
	}
}

func ByPriority(priority string) Predicate {
	if priority == "" || priority == All {
		return pass
	}
	return func(t task.Task) bool {
		return string(t.Priority) == priority
	}
}

// ByDate buckets tasks by due date. Tasks without one only pass NoDate,
// unknown buckets pass every dated task.
func ByDate(bucket string, now time.Time) Predicate {
	if bucket == "" || bucket == All {
		return pass
	}
	return func(t task.Task) bool {
		if t.DueDate == nil {
			return bucket == NoDate
		}
		due := *t.DueDate
		switch bucket {
		case Today:
			return date.IsToday(due, now)
		case Tomorrow:
			return date.IsTomorrow(due, now)
		case ThisWeek:
			return date.IsThisWeek(due, now)
		case Overdue:
			return date.IsPast(due, now)
		case NoDate:
			return false
		}
		return true
	}
}
