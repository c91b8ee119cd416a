package main

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"
	"github.com/td0m/taskflow/internal/logger"
	"github.com/td0m/taskflow/pkg/task"
)

var now = time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)

func clock() time.Time {
	return now
}

func day(d int) *time.Time {
	t := time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// run executes commands until none are left and feeds their messages back
func run(m *app, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func press(m *app, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case "ctrl+x":
			msg = tea.KeyMsg{Type: tea.KeyCtrlX}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := m.Update(msg)
		run(m, cmd)
	}
}

func typeText(m *app, s string) {
	for _, r := range s {
		press(m, string(r))
	}
}

func newTestApp() (*app, *task.Store) {
	work := task.ID(1)
	store := task.NewStore([]task.Task{
		{ID: 1, Title: "Buy milk", Priority: task.Low},
		{ID: 2, Title: "Write report", Priority: task.High, DueDate: day(10), CategoryID: &work},
		{ID: 3, Title: "Pay rent", Priority: task.Medium, DueDate: day(8)},
	}, []task.Category{
		{ID: 1, Name: "Work", Color: "#5B21B6"},
	}, task.WithClock(clock))
	m := newApp(store, logger.Discard(), clock)
	run(m, m.Init())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m, store
}

func visibleIDs(m *app) []task.ID {
	out := []task.ID{}
	for _, t := range m.visible {
		out = append(out, t.ID)
	}
	return out
}

func TestApp_Load(t *testing.T) {
	is := is.New(t)
	m, _ := newTestApp()
	is.Equal(visibleIDs(m), []task.ID{2, 3, 1})
	view := m.View()
	is.True(strings.Contains(view, "Write report"))
	is.True(strings.Contains(view, "All 3"))
	is.True(strings.Contains(view, "Today 1"))
	is.True(strings.Contains(view, "Work 1"))
	is.True(strings.Contains(view, "1 overdue"))
}

func TestApp_Tabs(t *testing.T) {
	is := is.New(t)
	m, _ := newTestApp()
	press(m, "tab")
	is.Equal(m.tabs.Active().Key, "today")
	is.Equal(visibleIDs(m), []task.ID{2})
	press(m, "tab", "tab", "tab")
	is.Equal(m.tabs.Active().Key, "1")
	is.Equal(visibleIDs(m), []task.ID{2})
}

func TestApp_QuickAdd(t *testing.T) {
	is := is.New(t)
	m, store := newTestApp()
	press(m, "a")
	typeText(m, "Call client tomorrow high priority")
	press(m, "enter")

	created, err := store.Task(4)
	is.NoErr(err)
	is.Equal(created.Title, "Call client priority")
	is.Equal(created.Priority, task.High)
	is.Equal(*created.DueDate, *day(11))
	is.True(created.CategoryID == nil)

	cur, ok := m.cursorTask()
	is.True(ok)
	is.Equal(cur.ID, task.ID(4))
	is.True(strings.Contains(m.status, "added"))
}

func TestApp_QuickAddInCategory(t *testing.T) {
	is := is.New(t)
	m, store := newTestApp()
	m.tabs.Set(4)
	m.apply()
	press(m, "a")
	typeText(m, "plan sprint")
	press(m, "enter")
	created, err := store.Task(4)
	is.NoErr(err)
	is.Equal(*created.CategoryID, task.ID(1))
}

func TestApp_QuickAddEmpty(t *testing.T) {
	is := is.New(t)
	m, store := newTestApp()
	press(m, "a")
	typeText(m, "asap")
	press(m, "enter")
	is.True(m.statusErr)
	is.Equal(len(store.Tasks()), 3)
}

func TestApp_Toggle(t *testing.T) {
	is := is.New(t)
	m, store := newTestApp()
	press(m, " ")
	got, _ := store.Task(2)
	is.True(got.Completed)
	// completed tasks sink and the cursor follows
	is.Equal(visibleIDs(m), []task.ID{3, 1, 2})
	cur, _ := m.cursorTask()
	is.Equal(cur.ID, task.ID(2))
}

func TestApp_BulkComplete(t *testing.T) {
	is := is.New(t)
	m, store := newTestApp()
	press(m, "x", "x", "c")
	for _, id := range []task.ID{2, 3} {
		got, _ := store.Task(id)
		is.True(got.Completed)
	}
	got, _ := store.Task(1)
	is.True(!got.Completed)
	is.Equal(len(m.selected), 0)
}

func TestApp_Delete(t *testing.T) {
	is := is.New(t)
	m, store := newTestApp()
	press(m, "j", "D")
	is.Equal(len(store.Tasks()), 2)
	_, err := store.Task(3)
	is.True(err != nil)
	is.Equal(visibleIDs(m), []task.ID{2, 1})
}

func TestApp_Move(t *testing.T) {
	is := is.New(t)
	m, store := newTestApp()
	press(m, "G", "m")
	typeText(m, "wo")
	press(m, "enter")
	got, _ := store.Task(1)
	is.Equal(*got.CategoryID, task.ID(1))

	press(m, "m")
	typeText(m, "home")
	press(m, "enter")
	is.True(m.statusErr)
}

func TestApp_Search(t *testing.T) {
	is := is.New(t)
	m, _ := newTestApp()
	press(m, "/")
	typeText(m, "MILK")
	is.Equal(visibleIDs(m), []task.ID{1})
	press(m, "enter")
	is.Equal(m.search, "MILK")
	press(m, "/", "esc")
	is.Equal(visibleIDs(m), []task.ID{2, 3, 1})
}

func TestApp_Filters(t *testing.T) {
	is := is.New(t)
	m, _ := newTestApp()
	press(m, "P")
	is.Equal(visibleIDs(m), []task.ID{2})
	press(m, "P", "F", "F", "F", "F", "F")
	is.Equal(m.options().Priority, "medium")
	is.Equal(m.options().Date, "no-date")
	is.Equal(visibleIDs(m), []task.ID{})
}

func TestApp_Rename(t *testing.T) {
	is := is.New(t)
	m, store := newTestApp()
	press(m, "i")
	for range "Write report" {
		press(m, "backspace")
	}
	press(m, "enter")
	is.True(m.statusErr)
	got, _ := store.Task(2)
	is.Equal(got.Title, "Write report")

	press(m, "i")
	typeText(m, "!")
	press(m, "enter")
	got, _ = store.Task(2)
	is.Equal(got.Title, "Write report!")
}

func TestApp_Due(t *testing.T) {
	is := is.New(t)
	m, store := newTestApp()
	press(m, "G", "d")
	typeText(m, "fri")
	press(m, "enter")
	got, _ := store.Task(1)
	is.Equal(*got.DueDate, *day(12))

	press(m, "d")
	for range "2024-01-12" {
		press(m, "backspace")
	}
	press(m, "enter")
	got, _ = store.Task(1)
	is.True(got.DueDate == nil)
}

func TestApp_Priority(t *testing.T) {
	is := is.New(t)
	m, store := newTestApp()
	press(m, "G", "p")
	got, _ := store.Task(1)
	is.Equal(got.Priority, task.Medium)
}

func TestApp_Reorder(t *testing.T) {
	is := is.New(t)
	store := task.NewStore([]task.Task{
		{ID: 1, Title: "a", Priority: task.Medium},
		{ID: 2, Title: "b", Priority: task.Medium},
	}, nil, task.WithClock(clock))
	m := newApp(store, logger.Discard(), clock)
	run(m, m.Init())
	is.Equal(visibleIDs(m), []task.ID{1, 2})
	press(m, "J")
	is.Equal(visibleIDs(m), []task.ID{2, 1})
	cur, _ := m.cursorTask()
	is.Equal(cur.ID, task.ID(1))
}

func TestApp_Categories(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		is := is.New(t)
		m, store := newTestApp()
		press(m, "C")
		typeText(m, "Home")
		press(m, "enter")

		categories := store.Categories()
		is.Equal(len(categories), 2)
		is.Equal(categories[1].Name, "Home")
		is.Equal(categories[1].Color, task.Palette[1])
		is.True(strings.Contains(m.View(), "Home 0"))
	})

	t.Run("rename the active tab", func(t *testing.T) {
		is := is.New(t)
		m, store := newTestApp()
		m.tabs.Set(4)
		m.apply()
		press(m, "R", "backspace", "backspace", "backspace", "backspace")
		typeText(m, "Office")
		press(m, "enter")

		c, err := store.Category(1)
		is.NoErr(err)
		is.Equal(c.Name, "Office")
		is.Equal(m.tabs.Active().Key, "1")
	})

	t.Run("delete keeps the tasks", func(t *testing.T) {
		is := is.New(t)
		m, store := newTestApp()
		m.tabs.Set(4)
		m.apply()
		press(m, "ctrl+x")

		is.Equal(len(store.Categories()), 0)
		got, err := store.Task(2)
		is.NoErr(err)
		is.True(got.CategoryID == nil)
		is.Equal(m.tabs.Active().Key, "all")
		is.Equal(len(m.visible), 3)
		is.True(strings.Contains(m.status, "1 tasks uncategorized"))
	})

	t.Run("only on category tabs", func(t *testing.T) {
		is := is.New(t)
		m, store := newTestApp()
		press(m, "R")
		is.Equal(m.mode, modeNormal)
		press(m, "ctrl+x")
		is.Equal(len(store.Categories()), 1)
	})
}
