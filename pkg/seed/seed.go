// Package seed reads and writes the datasets a session store starts from.
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/td0m/taskflow/pkg/task"
	"github.com/td0m/taskflow/pkg/task/date"
	"gopkg.in/yaml.v3"
)

var (
	ErrFormat  = errors.New("unsupported seed format")
	ErrInvalid = errors.New("invalid seed")
)

//go:embed default.yaml
var defaultSeed []byte

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatOf picks a format from a file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, path)
}

type Dataset struct {
	Tasks      []task.Task
	Categories []task.Category
}

// file is the on-disk layout. Due dates are free text, resolved against the
// load time, so a seed can say "tomorrow" and stay useful.
type file struct {
	Categories []categoryRecord `json:"categories" yaml:"categories"`
	Tasks      []taskRecord     `json:"tasks" yaml:"tasks"`
}

type categoryRecord struct {
	ID       int    `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string `json:"name" yaml:"name"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
	Position *int   `json:"position,omitempty" yaml:"position,omitempty"`
}

type taskRecord struct {
	ID          int        `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool       `json:"completed,omitempty" yaml:"completed,omitempty"`
	Priority    string     `json:"priority,omitempty" yaml:"priority,omitempty"`
	Due         string     `json:"due,omitempty" yaml:"due,omitempty"`
	CategoryID  int        `json:"categoryId,omitempty" yaml:"categoryId,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

// Default is the dataset shipped with the binary
func Default(now time.Time) (Dataset, error) {
	return Decode(bytes.NewReader(defaultSeed), YAML, now)
}

// Load reads a seed file, the format follows the extension
func Load(path string, now time.Time) (Dataset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Dataset{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()
	return Decode(f, format, now)
}

// Decode reads and validates a dataset. Records without an id are numbered
// after the highest explicit one.
func Decode(r io.Reader, format Format, now time.Time) (Dataset, error) {
	var in file
	switch format {
	case JSON:
		if err := json.NewDecoder(r).Decode(&in); err != nil {
			return Dataset{}, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
			return Dataset{}, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	default:
		return Dataset{}, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	return in.dataset(now)
}

func (f file) dataset(now time.Time) (Dataset, error) {
	ds := Dataset{
		Tasks:      make([]task.Task, 0, len(f.Tasks)),
		Categories: make([]task.Category, 0, len(f.Categories)),
	}

	categoryIDs := make([]int, len(f.Categories))
	for i, c := range f.Categories {
		categoryIDs[i] = c.ID
	}
	categoryIDs, err := assignIDs(categoryIDs)
	if err != nil {
		return Dataset{}, fmt.Errorf("categories: %w", err)
	}
	known := map[task.ID]bool{}
	for i, c := range f.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return Dataset{}, fmt.Errorf("%w: category %d has no name", ErrInvalid, categoryIDs[i])
		}
		id := task.ID(categoryIDs[i])
		known[id] = true
		position := i
		if c.Position != nil {
			position = *c.Position
		}
		ds.Categories = append(ds.Categories, task.Category{
			ID:       id,
			Name:     c.Name,
			Color:    c.Color,
			Position: position,
		})
	}

	taskIDs := make([]int, len(f.Tasks))
	for i, t := range f.Tasks {
		taskIDs[i] = t.ID
	}
	taskIDs, err = assignIDs(taskIDs)
	if err != nil {
		return Dataset{}, fmt.Errorf("tasks: %w", err)
	}
	for i, r := range f.Tasks {
		t, err := r.task(task.ID(taskIDs[i]), known, now)
		if err != nil {
			return Dataset{}, err
		}
		ds.Tasks = append(ds.Tasks, t)
	}
	return ds, nil
}

func (r taskRecord) task(id task.ID, categories map[task.ID]bool, now time.Time) (task.Task, error) {
	t := task.Task{
		ID:          id,
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Completed:   r.Completed,
		Priority:    task.Medium,
		CreatedAt:   now,
	}
	if t.Title == "" {
		return task.Task{}, fmt.Errorf("%w: task %d has no title", ErrInvalid, id)
	}
	if r.Priority != "" {
		p, err := task.ParsePriority(r.Priority)
		if err != nil {
			return task.Task{}, fmt.Errorf("%w: task %d: %v", ErrInvalid, id, err)
		}
		t.Priority = p
	}
	if r.Due != "" {
		due, err := date.Parse(r.Due, now)
		if err != nil {
			return task.Task{}, fmt.Errorf("%w: task %d: %v", ErrInvalid, id, err)
		}
		t.DueDate = &due
	}
	if r.CategoryID != 0 {
		c := task.ID(r.CategoryID)
		if !categories[c] {
			return task.Task{}, fmt.Errorf("%w: task %d references unknown category %d", ErrInvalid, id, c)
		}
		t.CategoryID = &c
	}
	if r.CreatedAt != nil {
		t.CreatedAt = *r.CreatedAt
	}
	if t.Completed {
		at := now
		if r.CompletedAt != nil {
			at = *r.CompletedAt
		}
		t.CompletedAt = &at
	}
	return t, nil
}

// assignIDs fills zero ids with max+1 in order and rejects duplicates
func assignIDs(ids []int) ([]int, error) {
	seen := map[int]bool{}
	highest := 0
	for _, id := range ids {
		if id < 0 {
			return nil, fmt.Errorf("%w: negative id %d", ErrInvalid, id)
		}
		if id == 0 {
			continue
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalid, id)
		}
		seen[id] = true
		highest = max(highest, id)
	}
	out := make([]int, len(ids))
	for i, id := range ids {
		if id == 0 {
			highest++
			id = highest
		}
		out[i] = id
	}
	return out, nil
}

// Encode writes a dataset in the given format with absolute due dates
func Encode(w io.Writer, format Format, ds Dataset) error {
	out := file{
		Categories: make([]categoryRecord, len(ds.Categories)),
		Tasks:      make([]taskRecord, len(ds.Tasks)),
	}
	for i, c := range ds.Categories {
		position := c.Position
		out.Categories[i] = categoryRecord{
			ID:       int(c.ID),
			Name:     c.Name,
			Color:    c.Color,
			Position: &position,
		}
	}
	for i, t := range ds.Tasks {
		r := taskRecord{
			ID:          int(t.ID),
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			Priority:    string(t.Priority),
		}
		if t.DueDate != nil {
			r.Due = t.DueDate.Format(time.DateOnly)
		}
		if t.CategoryID != nil {
			r.CategoryID = int(*t.CategoryID)
		}
		if !t.CreatedAt.IsZero() {
			created := t.CreatedAt
			r.CreatedAt = &created
		}
		if t.Completed && t.CompletedAt != nil {
			completed := *t.CompletedAt
			r.CompletedAt = &completed
		}
		out.Tasks[i] = r
	}

	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrFormat, format)
}
