package stats

import (
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/td0m/taskflow/pkg/task"
)

var now = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

func day(d int) *time.Time {
	t := time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func fixture() ([]task.Task, []task.Category) {
	work, home := task.ID(1), task.ID(2)
	tasks := []task.Task{
		{ID: 1, Title: "a", DueDate: day(10), CategoryID: &work},
		{ID: 2, Title: "b", DueDate: day(10), Completed: true, CategoryID: &work},
		{ID: 3, Title: "c", DueDate: day(8), CategoryID: &home},
		{ID: 4, Title: "d", DueDate: day(12)},
		{ID: 5, Title: "e", DueDate: day(2), Completed: true},
		{ID: 6, Title: "f", CategoryID: &home},
		{ID: 7, Title: "g", DueDate: day(15), CategoryID: &home},
	}
	categories := []task.Category{
		{ID: 1, Name: "Work"},
		{ID: 2, Name: "Home"},
		{ID: 3, Name: "Empty"},
	}
	return tasks, categories
}

func TestSummarize(t *testing.T) {
	t.Run("counts", func(t *testing.T) {
		is := is.New(t)
		tasks, _ := fixture()
		s := Summarize(tasks, now)
		is.Equal(s, Summary{
			Total:          7,
			Completed:      2,
			DueToday:       1,
			Overdue:        1,
			CompletionRate: 29,
		})
	})

	t.Run("empty", func(t *testing.T) {
		is := is.New(t)
		is.Equal(Summarize(nil, now), Summary{})
	})

	t.Run("due today is never overdue", func(t *testing.T) {
		is := is.New(t)
		// every hour of today, including midnight
		for h := 0; h < 24; h++ {
			due := time.Date(2024, time.January, 10, h, 0, 0, 0, time.UTC)
			s := Summarize([]task.Task{{ID: 1, Title: "x", DueDate: &due}}, now)
			is.Equal(s.DueToday, 1)
			is.Equal(s.Overdue, 0)
		}
	})

	t.Run("rounds the rate", func(t *testing.T) {
		is := is.New(t)
		tasks := []task.Task{{Completed: true}, {Completed: true}, {}}
		is.Equal(Summarize(tasks, now).CompletionRate, 67)
		tasks = []task.Task{{Completed: true}, {}, {}}
		is.Equal(Summarize(tasks, now).CompletionRate, 33)
		tasks = []task.Task{{Completed: true}, {}}
		is.Equal(Summarize(tasks, now).CompletionRate, 50)
	})
}

func TestCount(t *testing.T) {
	t.Run("counts", func(t *testing.T) {
		is := is.New(t)
		tasks, categories := fixture()
		c := Count(tasks, categories, now)
		is.Equal(c.All, 7)
		is.Equal(c.Today, 1)
		is.Equal(c.Upcoming, 2)
		is.Equal(c.Completed, 2)
		is.Equal(c.ByCategory, map[task.ID]int{1: 1, 2: 3, 3: 0})
	})

	t.Run("unknown categories are not counted", func(t *testing.T) {
		is := is.New(t)
		ghost := task.ID(42)
		c := Count([]task.Task{{ID: 1, CategoryID: &ghost}}, nil, now)
		is.Equal(c.ByCategory, map[task.ID]int{})
	})
}
