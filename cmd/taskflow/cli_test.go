package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/matryer/is"
	"github.com/td0m/taskflow/pkg/seed"
)

// Wednesday
var now = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	text.DisableColors()
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(func() time.Time { return now })
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	is := is.New(t)

	out, err := execute(t, "list")
	is.NoErr(err)
	is.True(strings.Contains(out, "Finish quarterly report"))
	is.True(strings.Contains(out, "Morning run"))

	// overdue high before today's high, completed last
	passport := strings.Index(out, "Renew passport")
	report := strings.Index(out, "Finish quarterly report")
	run := strings.Index(out, "Morning run")
	is.True(passport < report)
	is.True(report < run)
	is.True(strings.Contains(out, "Overdue (Jan 9)"))
}

func TestListCategory(t *testing.T) {
	is := is.New(t)

	out, err := execute(t, "list", "-c", "work")
	is.NoErr(err)
	is.True(strings.Contains(out, "Finish quarterly report"))
	is.True(strings.Contains(out, "Prepare team offsite agenda"))
	is.True(!strings.Contains(out, "Renew passport"))

	out, err = execute(t, "list", "--category", "2")
	is.NoErr(err)
	is.True(strings.Contains(out, "Renew passport"))
	is.True(!strings.Contains(out, "Finish quarterly report"))

	out, err = execute(t, "list", "--category", "completed")
	is.NoErr(err)
	is.True(strings.Contains(out, "Morning run"))
	is.True(!strings.Contains(out, "Call mom"))

	_, err = execute(t, "list", "-c", "gardening")
	is.True(err != nil)
}

func TestListFilters(t *testing.T) {
	is := is.New(t)

	out, err := execute(t, "list", "--due", "overdue")
	is.NoErr(err)
	is.True(strings.Contains(out, "Renew passport"))
	is.True(!strings.Contains(out, "Finish quarterly report"))

	out, err = execute(t, "list", "-p", "LOW")
	is.NoErr(err)
	is.True(strings.Contains(out, "Buy groceries"))
	is.True(!strings.Contains(out, "Call mom"))

	out, err = execute(t, "list", "-q", "COFFEE")
	is.NoErr(err)
	is.True(strings.Contains(out, "Buy groceries"))
	is.True(!strings.Contains(out, "Renew passport"))

	out, err = execute(t, "list", "-q", "nothing like this")
	is.NoErr(err)
	is.Equal(out, "No tasks match.\n")

	_, err = execute(t, "list", "-p", "urgent")
	is.True(err != nil)
}

func TestListNarrowed(t *testing.T) {
	is := is.New(t)

	// search, priority and category together still intersect
	out, err := execute(t, "list", "-q", "r", "-p", "high", "-c", "work")
	is.NoErr(err)
	is.True(strings.Contains(out, "Finish quarterly report"))
	is.True(!strings.Contains(out, "Renew passport"))
	is.True(!strings.Contains(out, "Review pull requests"))

	out, err = execute(t, "list", "-p", "high", "-c", "personal")
	is.NoErr(err)
	is.True(strings.Contains(out, "Renew passport"))
	is.True(!strings.Contains(out, "Finish quarterly report"))
}

func TestListLimit(t *testing.T) {
	is := is.New(t)

	out, err := execute(t, "list", "--limit", "1")
	is.NoErr(err)
	is.True(strings.Contains(out, "Renew passport"))
	is.True(!strings.Contains(out, "Finish quarterly report"))
}

func TestStats(t *testing.T) {
	is := is.New(t)

	out, err := execute(t, "stats")
	is.NoErr(err)
	is.True(strings.Contains(out, "11%"))
	is.True(strings.Contains(out, "Open by category"))
	is.True(strings.Contains(out, "shopping"))

	fields := map[string]string{}
	for _, line := range strings.Split(out, "\n") {
		f := strings.Fields(line)
		if len(f) >= 2 {
			fields[f[0]] = f[len(f)-1]
		}
	}
	is.Equal(fields["Total"], "9")
	is.Equal(fields["Done"], "1")
	is.Equal(fields["Overdue"], "1")
}

func TestCategories(t *testing.T) {
	is := is.New(t)

	out, err := execute(t, "categories")
	is.NoErr(err)
	for _, s := range []string{"Work", "Personal", "Shopping", "Health", "#D97706"} {
		is.True(strings.Contains(out, s))
	}
}

func TestCategoriesAdd(t *testing.T) {
	is := is.New(t)

	out, err := execute(t, "categories", "add", "Garden", "Work")
	is.NoErr(err)
	is.True(strings.Contains(out, "Garden Work"))
	is.True(strings.Contains(out, "garden-work"))
	is.True(strings.Contains(out, "#8B5CF6")) // fifth palette color

	out, err = execute(t, "categories", "add", "Errands", "--color", "#112233")
	is.NoErr(err)
	is.True(strings.Contains(out, "#112233"))

	_, err = execute(t, "categories", "add", "Errands", "--color", "blue")
	is.True(err != nil)

	_, err = execute(t, "categories", "add", "  ")
	is.True(err != nil)
}

func TestCategoriesRename(t *testing.T) {
	is := is.New(t)

	out, err := execute(t, "categories", "rename", "pers", "Home", "Life")
	is.NoErr(err)
	is.True(strings.Contains(out, "Home Life"))
	is.True(!strings.Contains(out, "Personal"))

	_, err = execute(t, "categories", "rename", "nowhere", "x")
	is.True(err != nil)
}

func TestCategoriesRemove(t *testing.T) {
	is := is.New(t)

	out, err := execute(t, "categories", "rm", "work")
	is.NoErr(err)
	lines := strings.SplitN(out, "\n", 2)
	is.True(strings.Contains(lines[0], "Deleted Work, 3 tasks no longer have a category"))

	// the freed tasks are shown without a category
	rest := lines[1]
	is.True(strings.Contains(rest, "Finish quarterly report"))
	is.True(strings.Contains(rest, "Review pull requests"))
	is.True(strings.Contains(rest, "Prepare team offsite agenda"))
	is.True(!strings.Contains(rest, "Work"))

	out, err = execute(t, "categories", "rm", "shopping")
	is.NoErr(err)
	is.True(strings.Contains(out, "1 tasks"))
	is.True(strings.Contains(out, "Buy groceries"))

	_, err = execute(t, "categories", "rm", "gardening")
	is.True(err != nil)
}

func TestParse(t *testing.T) {
	is := is.New(t)

	out, err := execute(t, "parse", "Call", "client", "tomorrow", "high", "priority")
	is.NoErr(err)
	is.True(strings.Contains(out, "Call client priority"))
	is.True(strings.Contains(out, "high"))
	is.True(strings.Contains(out, "2024-01-11 (Tomorrow)"))

	out, err = execute(t, "parse", "urgent")
	is.NoErr(err)
	is.True(strings.Contains(out, "(empty)"))
	is.True(strings.Contains(out, "none"))
}

func TestAdd(t *testing.T) {
	is := is.New(t)

	out, err := execute(t, "add", "renew car insurance asap", "-c", "pers")
	is.NoErr(err)
	is.True(strings.Contains(out, "renew car insurance"))
	is.True(strings.Contains(out, "Personal"))
	is.True(strings.Contains(out, "10")) // next id after 9
	is.True(strings.Contains(out, "high"))

	out, err = execute(t, "add", "plan", "offsite", "--due", "fri", "-p", "low")
	is.NoErr(err)
	is.True(strings.Contains(out, "Jan 12"))
	is.True(strings.Contains(out, "low"))

	_, err = execute(t, "add", "tomorrow", "asap")
	is.True(err != nil)

	_, err = execute(t, "add", "something", "-c", "nowhere")
	is.True(err != nil)

	_, err = execute(t, "add", "something", "--due", "someday soon")
	is.True(err != nil)
}

func TestShow(t *testing.T) {
	is := is.New(t)

	out, err := execute(t, "show", "1", "--style", "ascii")
	is.NoErr(err)
	is.True(strings.Contains(out, "[1] Finish quarterly report"))
	is.True(strings.Contains(out, "Priority: high"))
	is.True(strings.Contains(out, "2024-01-10 (Today)"))
	is.True(strings.Contains(out, "Category: Work"))
	is.True(strings.Contains(out, "Q3 numbers"))

	out, err = execute(t, "show", "1", "--meta")
	is.NoErr(err)
	is.True(!strings.Contains(out, "Q3 numbers"))

	out, err = execute(t, "show", "8")
	is.NoErr(err)
	is.True(strings.Contains(out, "Status: done"))

	_, err = execute(t, "show", "99")
	is.True(err != nil)

	_, err = execute(t, "show", "first")
	is.True(err != nil)
}

func TestExport(t *testing.T) {
	is := is.New(t)

	out, err := execute(t, "export", "-f", "json")
	is.NoErr(err)
	ds, err := seed.Decode(strings.NewReader(out), seed.JSON, now)
	is.NoErr(err)
	is.Equal(len(ds.Tasks), 9)
	is.Equal(len(ds.Categories), 4)
	is.Equal(ds.Tasks[0].DueDate.Format(time.DateOnly), "2024-01-10")

	out, err = execute(t, "export")
	is.NoErr(err)
	is.True(strings.Contains(out, "due: \"2024-01-10\"") || strings.Contains(out, "due: 2024-01-10"))

	_, err = execute(t, "export", "-f", "toml")
	is.True(err != nil)
}

func TestSeedFlag(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "tasks.yaml")
	is.NoErr(os.WriteFile(path, []byte(`
categories:
  - name: Garden
tasks:
  - title: Water the plants
    due: today
    categoryId: 1
  - title: Mow the lawn
    priority: low
`), 0o644))

	out, err := execute(t, "--seed", path, "list", "-c", "garden")
	is.NoErr(err)
	is.True(strings.Contains(out, "Water the plants"))
	is.True(!strings.Contains(out, "Mow the lawn"))

	_, err = execute(t, "--seed", filepath.Join(t.TempDir(), "missing.yaml"), "list")
	is.True(err != nil)
}

func TestNowFlag(t *testing.T) {
	is := is.New(t)

	// seed dates follow the evaluation day
	out, err := execute(t, "--now", "2024-03-01", "parse", "x", "tomorrow")
	is.NoErr(err)
	is.True(strings.Contains(out, "2024-03-02"))

	_, err = execute(t, "--now", "not a day", "stats")
	is.True(err != nil)
}
