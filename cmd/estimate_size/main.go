package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/td0m/taskflow/pkg/seed"
	"github.com/td0m/taskflow/pkg/task"
	"github.com/td0m/taskflow/pkg/task/filter"
	"github.com/td0m/taskflow/pkg/task/stats"
)

var (
	years  = flag.Int("years", 10, "Years of tasks to generate")
	perDay = flag.Int("per-day", 30, "Tasks created per day")
	format = flag.String("format", "json", "Seed format to measure, json or yaml")
)

func main() {
	flag.Parse()
	total := 365 * *perDay * *years
	now := time.Now()
	rng := rand.New(rand.NewSource(now.UnixNano()))

	categories := []task.Category{
		{ID: 1, Name: "Work", Color: "#5B21B6"},
		{ID: 2, Name: "Personal", Color: "#059669", Position: 1},
		{ID: 3, Name: "Shopping", Color: "#D97706", Position: 2},
	}
	tasks := make([]task.Task, total)
	for i := range tasks {
		created := now.AddDate(0, 0, -i / *perDay)
		t := task.Task{
			ID:          task.ID(i + 1),
			Title:       randomString(rng, 24),
			Description: randomString(rng, 60),
			Priority:    task.Priorities[rng.Intn(len(task.Priorities))],
			Completed:   rng.Intn(4) > 0,
			CreatedAt:   created,
		}
		if rng.Intn(3) > 0 {
			due := created.AddDate(0, 0, rng.Intn(30))
			t.DueDate = &due
		}
		if rng.Intn(4) > 0 {
			t.CategoryID = &categories[rng.Intn(len(categories))].ID
		}
		tasks[i] = t
	}

	file := path.Join(os.TempDir(), "tasks."+*format)
	ds := seed.Dataset{Tasks: tasks, Categories: categories}
	writeTime := measureTime(func() {
		f, err := os.Create(file)
		check(err)
		defer f.Close()
		check(seed.Encode(f, seed.Format(*format), ds))
	})

	readTime := measureTime(func() {
		_, err := seed.Load(file, now)
		check(err)
	})

	var visible []task.Task
	filterTime := measureTime(func() {
		o := filter.Default()
		o.Category = filter.Upcoming
		o.Search = "a"
		visible = filter.Apply(tasks, o, now)
	})
	sortTime := measureTime(func() {
		filter.Sorted(tasks)
	})
	countTime := measureTime(func() {
		stats.Count(tasks, categories, now)
		stats.Summarize(tasks, now)
	})

	info, err := os.Stat(file)
	check(err)
	fmt.Printf("Tasks: %d years, %d per day (%s total)\n", *years, *perDay, humanize.Comma(int64(total)))
	fmt.Printf("File size: %s\n", humanize.Bytes(uint64(info.Size())))
	fmt.Printf("Write time: %dms\n", writeTime.Milliseconds())
	fmt.Printf("Read time: %dms\n", readTime.Milliseconds())
	fmt.Printf("Filter time: %dms (%s visible)\n", filterTime.Milliseconds(), humanize.Comma(int64(len(visible))))
	fmt.Printf("Sort time: %dms\n", sortTime.Milliseconds())
	fmt.Printf("Count time: %dms\n", countTime.Milliseconds())
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func measureTime(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

const letters = "abcdefghijklmnopqrstuvwxyz ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomString(rng *rand.Rand, l int) string {
	b := make([]byte, l)
	for i := range b {
		b[i] = letters[rng.Intn(len(letters))]
	}
	return string(b)
}
