// Package quickadd infers task fields from a single line of free text,
// e.g. "call the bank tomorrow asap".
package quickadd

import (
	"regexp"
	"strings"
	"time"

	"github.com/td0m/taskflow/pkg/task"
	"github.com/td0m/taskflow/pkg/task/date"
)

var (
	highWords = []string{"urgent", "important", "high", "asap", "critical"}
	lowWords  = []string{"low", "later", "sometime", "maybe"}
)

var (
	keywords   = regexp.MustCompile(`(?i)\b(urgent|important|high|asap|critical|low|later|sometime|maybe|today|tomorrow)\b`)
	whitespace = regexp.MustCompile(`\s+`)
)

type Result struct {
	Title    string
	Priority task.Priority
	DueDate  *time.Time
}

// Valid reports whether a task can be created from the result
func (r Result) Valid() bool {
	return r.Title != ""
}

// NewTask converts the result into store input
func (r Result) NewTask() task.NewTask {
	return task.NewTask{
		Title:    r.Title,
		Priority: r.Priority,
		DueDate:  r.DueDate,
	}
}

// Parse extracts a priority and a due date from input.
// Keywords are detected anywhere in the text, even inside other words,
// but only removed from the title when they stand alone.
func Parse(input string, now time.Time) Result {
	lower := strings.ToLower(input)
	r := Result{Priority: task.Medium}

	switch {
	case containsAny(lower, highWords):
		r.Priority = task.High
	case containsAny(lower, lowWords):
		r.Priority = task.Low
	}

	today := date.StartOfDay(now)
	switch {
	case strings.Contains(lower, "today"):
		r.DueDate = &today
	case strings.Contains(lower, "tomorrow"):
		tomorrow := today.AddDate(0, 0, 1)
		r.DueDate = &tomorrow
	}

	title := keywords.ReplaceAllString(input, "")
	r.Title = strings.TrimSpace(whitespace.ReplaceAllString(title, " "))
	return r
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
