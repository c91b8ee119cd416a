package task

import (
	"fmt"
	"strings"
	"time"
)

type ID int

type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

// Priorities lists every priority from lowest to highest
var Priorities = []Priority{Low, Medium, High}

// Rank orders priorities, higher is more important. Unknown priorities rank 0.
func (p Priority) Rank() int {
	switch p {
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	}
	return 0
}

// Next cycles low -> medium -> high -> low
func (p Priority) Next() Priority {
	switch p {
	case Low:
		return Medium
	case Medium:
		return High
	}
	return Low
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p.Rank() == 0 {
		return "", fmt.Errorf("%w: unknown priority %q", ErrValidation, s)
	}
	return p, nil
}

type Task struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CategoryID  *ID        `json:"categoryId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// InCategory reports whether the task references the given category
func (t Task) InCategory(id ID) bool {
	return t.CategoryID != nil && *t.CategoryID == id
}

// Matches is a case insensitive substring search over title and description.
// An empty query matches everything.
func (t Task) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

func (t Task) clone() Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	if t.CategoryID != nil {
		c := *t.CategoryID
		t.CategoryID = &c
	}
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		t.CompletedAt = &c
	}
	return t
}

type Category struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position int    `json:"position"`
}

// NewTask holds the caller supplied fields of a task about to be created.
// Zero values fall back to the defaults.
type NewTask struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     *time.Time
	CategoryID  *ID
	Completed   bool
}

// TaskPatch is a partial update, nil fields are left untouched.
// DueDate and CategoryID can only be removed through their Clear flags.
type TaskPatch struct {
	Title         *string
	Description   *string
	Completed     *bool
	Priority      *Priority
	DueDate       *time.Time
	ClearDueDate  bool
	CategoryID    *ID
	ClearCategory bool
}

type NewCategory struct {
	Name  string
	Color string
	// Position defaults to the end of the list
	Position *int
}

type CategoryPatch struct {
	Name     *string
	Color    *string
	Position *int
}

// Ptr is a helper for filling patches
func Ptr[T any](v T) *T {
	return &v
}
