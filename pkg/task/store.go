package task

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/td0m/taskflow/pkg/task/date"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// Store keeps tasks and categories in memory for the lifetime of a session.
// Tasks are kept most recent first, categories in insertion order.
type Store struct {
	mu         sync.Mutex
	tasks      []Task
	categories []Category

	now     func() time.Time
	latency time.Duration
	log     *slog.Logger
}

type Option func(*Store)

// WithClock replaces time.Now, used for CreatedAt and CompletedAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLatency delays every operation, simulating a remote backend
func WithLatency(d time.Duration) Option {
	return func(s *Store) {
		s.latency = d
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore creates a store seeded with the given records. Ids are kept as is.
func NewStore(tasks []Task, categories []Category, opts ...Option) *Store {
	s := &Store{
		now: time.Now,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tasks = make([]Task, 0, len(tasks))
	for _, t := range tasks {
		t = t.clone()
		if t.Priority == "" {
			t.Priority = Medium
		}
		t.DueDate = dueDay(t.DueDate)
		// completed <=> completedAt
		if t.Completed && t.CompletedAt == nil {
			at := s.now()
			t.CompletedAt = &at
		}
		if !t.Completed {
			t.CompletedAt = nil
		}
		s.tasks = append(s.tasks, t)
	}
	s.categories = append([]Category{}, categories...)
	return s
}

func (s *Store) wait() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}

func taskNotFound(id ID) error {
	return fmt.Errorf("task %d: %w", id, ErrNotFound)
}

func categoryNotFound(id ID) error {
	return fmt.Errorf("category %d: %w", id, ErrNotFound)
}

func (s *Store) taskIndex(id ID) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) categoryIndex(id ID) int {
	for i, c := range s.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nextTaskID() ID {
	var highest ID
	for _, t := range s.tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

func (s *Store) nextCategoryID() ID {
	var highest ID
	for _, c := range s.categories {
		if c.ID > highest {
			highest = c.ID
		}
	}
	return highest + 1
}

// Tasks returns a copy of every task in display order
func (s *Store) Tasks() []Task {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterLocked(func(Task) bool { return true })
}

func (s *Store) filterLocked(keep func(Task) bool) []Task {
	out := []Task{}
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t.clone())
		}
	}
	return out
}

func (s *Store) Task(id ID) (Task, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i == -1 {
		return Task{}, taskNotFound(id)
	}
	return s.tasks[i].clone(), nil
}

// TasksByCategory returns the tasks referencing a category
func (s *Store) TasksByCategory(id ID) []Task {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterLocked(func(t Task) bool { return t.InCategory(id) })
}

func (s *Store) TasksByPriority(p Priority) []Task {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterLocked(func(t Task) bool { return t.Priority == p })
}

// SearchTasks matches the query against titles and descriptions
func (s *Store) SearchTasks(query string) []Task {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterLocked(func(t Task) bool { return t.Matches(query) })
}

// CreateTask stores a new task in front of all others
func (s *Store) CreateTask(in NewTask) (Task, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t := Task{
		ID:          s.nextTaskID(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Completed:   in.Completed,
		Priority:    in.Priority,
		DueDate:     dueDay(in.DueDate),
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
	}
	if t.Priority == "" {
		t.Priority = Medium
	}
	if t.Completed {
		t.CompletedAt = &now
	}
	if err := validateTask(t); err != nil {
		return Task{}, err
	}
	t = t.clone()
	s.tasks = append([]Task{t}, s.tasks...)
	s.log.Debug("task created", "id", t.ID, "priority", t.Priority)
	return t.clone(), nil
}

// UpdateTask merges the set fields of the patch into an existing task
func (s *Store) UpdateTask(id ID, p TaskPatch) (Task, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(id, p)
}

func (s *Store) updateLocked(id ID, p TaskPatch) (Task, error) {
	i := s.taskIndex(id)
	if i == -1 {
		return Task{}, taskNotFound(id)
	}
	t := s.tasks[i].clone()
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		t.DueDate = dueDay(p.DueDate)
	}
	if p.ClearCategory {
		t.CategoryID = nil
	} else if p.CategoryID != nil {
		c := *p.CategoryID
		t.CategoryID = &c
	}
	if p.Completed != nil && *p.Completed != t.Completed {
		t.Completed = *p.Completed
		if t.Completed {
			at := s.now()
			t.CompletedAt = &at
		} else {
			t.CompletedAt = nil
		}
	}
	if err := validateTask(t); err != nil {
		return Task{}, err
	}
	s.tasks[i] = t
	s.log.Debug("task updated", "id", id)
	return t.clone(), nil
}

// ToggleComplete flips the completion state of a task
func (s *Store) ToggleComplete(id ID) (Task, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i == -1 {
		return Task{}, taskNotFound(id)
	}
	return s.updateLocked(id, TaskPatch{Completed: Ptr(!s.tasks[i].Completed)})
}

func (s *Store) DeleteTask(id ID) error {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i == -1 {
		return taskNotFound(id)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.log.Debug("task deleted", "id", id)
	return nil
}

// BulkComplete marks every matching task as completed at the same instant.
// Unknown ids are skipped, the result is the number of ids requested.
func (s *Store) BulkComplete(ids []ID) int {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, id := range ids {
		if i := s.taskIndex(id); i != -1 {
			at := now
			s.tasks[i].Completed = true
			s.tasks[i].CompletedAt = &at
		}
	}
	s.log.Debug("tasks completed", "requested", len(ids))
	return len(ids)
}

// BulkDelete removes every matching task. Unknown and repeated ids are
// skipped, the result is the number of ids requested.
func (s *Store) BulkDelete(ids []ID) int {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if i := s.taskIndex(id); i != -1 {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		}
	}
	s.log.Debug("tasks deleted", "requested", len(ids))
	return len(ids)
}

// BulkUpdateCategory moves every matching task into a category, nil removes
// the category. The result is the number of ids requested.
func (s *Store) BulkUpdateCategory(ids []ID, category *ID) int {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if i := s.taskIndex(id); i != -1 {
			if category == nil {
				s.tasks[i].CategoryID = nil
				continue
			}
			c := *category
			s.tasks[i].CategoryID = &c
		}
	}
	s.log.Debug("tasks moved", "requested", len(ids), "uncategorized", category == nil)
	return len(ids)
}

// UpdatePosition moves a task to index, clamped to the valid range
func (s *Store) UpdatePosition(id ID, index int) (Task, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i == -1 {
		return Task{}, taskNotFound(id)
	}
	t := s.tasks[i]
	rest := append(s.tasks[:i:i], s.tasks[i+1:]...)
	index = clamp(index, 0, len(rest))
	s.tasks = insert(rest, index, t)
	s.log.Debug("task moved", "id", id, "from", i, "to", index)
	return t.clone(), nil
}

// Categories returns a copy of every category ordered by position
func (s *Store) Categories() []Category {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]Category{}, s.categories...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}

func (s *Store) Category(id ID) (Category, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.categoryIndex(id)
	if i == -1 {
		return Category{}, categoryNotFound(id)
	}
	return s.categories[i], nil
}

func (s *Store) CreateCategory(in NewCategory) (Category, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Category{
		ID:       s.nextCategoryID(),
		Name:     strings.TrimSpace(in.Name),
		Color:    in.Color,
		Position: len(s.categories),
	}
	if in.Position != nil {
		c.Position = *in.Position
	}
	if err := validateCategory(c); err != nil {
		return Category{}, err
	}
	s.categories = append(s.categories, c)
	s.log.Debug("category created", "id", c.ID, "name", c.Name)
	return c, nil
}

func (s *Store) UpdateCategory(id ID, p CategoryPatch) (Category, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(id)
	if i == -1 {
		return Category{}, categoryNotFound(id)
	}
	c := s.categories[i]
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Position != nil {
		c.Position = *p.Position
	}
	if err := validateCategory(c); err != nil {
		return Category{}, err
	}
	s.categories[i] = c
	s.log.Debug("category updated", "id", id)
	return c, nil
}

// DeleteCategory removes a category and uncategorizes the tasks referencing it
func (s *Store) DeleteCategory(id ID) error {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(id)
	if i == -1 {
		return categoryNotFound(id)
	}
	s.categories = append(s.categories[:i], s.categories[i+1:]...)
	cleared := 0
	for j := range s.tasks {
		if s.tasks[j].InCategory(id) {
			s.tasks[j].CategoryID = nil
			cleared++
		}
	}
	s.log.Debug("category deleted", "id", id, "tasks_cleared", cleared)
	return nil
}

// dueDay keeps due dates at day granularity
func dueDay(due *time.Time) *time.Time {
	if due == nil {
		return nil
	}
	d := date.StartOfDay(*due)
	return &d
}

func insert(a []Task, index int, value Task) []Task {
	if len(a) == index { // nil or empty slice or after last element
		return append(a, value)
	}
	a = append(a[:index+1], a[index:]...) // index < len(a)
	a[index] = value
	return a
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}
