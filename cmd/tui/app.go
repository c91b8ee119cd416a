package main

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/taskflow/internal/ui"
	"github.com/td0m/taskflow/pkg/dateinput"
	"github.com/td0m/taskflow/pkg/quickadd"
	"github.com/td0m/taskflow/pkg/task"
	"github.com/td0m/taskflow/pkg/task/filter"
	"github.com/td0m/taskflow/pkg/task/stats"
)

const (
	headerHeight = 4
	footerHeight = 2
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeRename
	modeDue
	modeSearch
	modeMove
	modeNewCategory
	modeRenameCategory
)

var priorityFilters = []string{filter.All, string(task.High), string(task.Medium), string(task.Low)}

var (
	statusError = lipgloss.NewStyle().Foreground(ui.Red)
	statusInfo  = lipgloss.NewStyle().Foreground(ui.Secondary)
	help        = lipgloss.NewStyle().Foreground(ui.Faded)
	label       = lipgloss.NewStyle().Foreground(ui.Faded)
)

// loadedMsg carries a fresh snapshot of the store
type loadedMsg struct {
	tasks      []task.Task
	categories []task.Category
}

// doneMsg reports the outcome of a store operation. Focus moves the cursor to
// a task once the next snapshot arrives.
type doneMsg struct {
	info  string
	focus task.ID
	err   error
}

type app struct {
	mode mode

	store *task.Store
	log   *slog.Logger
	now   func() time.Time

	viewport viewport.Model
	input    textinput.Model
	due      dateinput.Model
	tabs     ui.Tabs
	spinner  spinner.Model

	pending  int
	spinning bool

	tasks      []task.Task
	categories []task.Category
	visible    []task.Task
	selected   map[task.ID]bool
	cursor     int
	focus      task.ID
	editing    task.ID

	search   string
	priority int
	date     int

	status    string
	statusErr bool
}

func newApp(store *task.Store, log *slog.Logger, now func() time.Time) *app {
	i := textinput.New()
	i.Prompt = ""
	i.CharLimit = 500
	i.Cursor.SetMode(cursor.CursorStatic)

	return &app{
		store:    store,
		log:      log,
		now:      now,
		viewport: viewport.New(0, 0),
		input:    i,
		due:      dateinput.New(now),
		tabs:     ui.NewTabs(nil),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		selected: map[task.ID]bool{},
	}
}

func (m *app) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("taskflow"), m.load())
}

func (m *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.tabs.Width = msg.Width
		m.setCursor(m.cursor)
	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
	case spinner.TickMsg:
		if m.pending == 0 {
			m.spinning = false
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
	case loadedMsg:
		m.pending--
		m.tasks, m.categories = msg.tasks, msg.categories
		m.apply()
		if m.focus != 0 {
			m.setCursorTo(m.focus)
			m.focus = 0
		}
	case doneMsg:
		m.pending--
		if msg.err != nil {
			m.log.Warn("operation failed", "error", msg.err)
			m.setStatus(msg.err.Error(), true)
		} else {
			m.setStatus(msg.info, false)
			m.focus = msg.focus
		}
		cmd = m.load()
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case msg.Type == tea.KeyEsc:
			m.cancel()
		case m.mode == modeNormal:
			cmd = m.keyUpdate(msg)
		default:
			cmd = m.inputUpdate(msg)
		}
	}
	m.render()
	return m, cmd
}

// exec runs a store operation off the ui loop and reloads afterwards
func (m *app) exec(op func() doneMsg) tea.Cmd {
	m.pending++
	return tea.Batch(m.spin(), func() tea.Msg {
		return op()
	})
}

func (m *app) load() tea.Cmd {
	m.pending++
	store := m.store
	return tea.Batch(m.spin(), func() tea.Msg {
		return loadedMsg{tasks: store.Tasks(), categories: store.Categories()}
	})
}

func (m *app) spin() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *app) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m *app) cancel() {
	switch m.mode {
	case modeNormal:
		m.selected = map[task.ID]bool{}
		m.setStatus("", false)
	case modeSearch:
		m.search = ""
		m.apply()
	}
	m.mode = modeNormal
	m.input.Blur()
}

// handle keys of the task list
func (m *app) keyUpdate(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "j", "down":
		m.setCursor(m.cursor + 1)
	case "k", "up":
		m.setCursor(m.cursor - 1)
	case "g":
		m.setCursor(0)
	case "G":
		m.setCursor(len(m.visible))
	case "ctrl+d":
		m.setCursor(m.cursor + 10)
	case "ctrl+u":
		m.setCursor(m.cursor - 10)
	case "tab", "shift+tab":
		m.tabs, _ = m.tabs.Update(msg)
		m.apply()
		m.setCursor(0)
	case "/":
		m.prompt(modeSearch, m.search)
	case "P":
		m.priority = (m.priority + 1) % len(priorityFilters)
		m.apply()
	case "F":
		m.date = (m.date + 1) % len(filter.DateBuckets)
		m.apply()
	case "a", "o":
		m.prompt(modeAdd, "")
	case "i":
		if t, ok := m.cursorTask(); ok {
			m.editing = t.ID
			m.prompt(modeRename, t.Title)
		}
	case "d":
		if t, ok := m.cursorTask(); ok {
			m.editing = t.ID
			m.mode = modeDue
			m.due = dateinput.New(m.now)
			m.due.SetValue(t.DueDate)
		}
	case "m":
		if len(m.targets()) > 0 {
			m.prompt(modeMove, "")
		}
	case "p":
		if t, ok := m.cursorTask(); ok {
			return m.cyclePriority(t)
		}
	case " ":
		if t, ok := m.cursorTask(); ok {
			return m.toggle(t.ID)
		}
	case "x":
		if t, ok := m.cursorTask(); ok {
			if m.selected[t.ID] {
				delete(m.selected, t.ID)
			} else {
				m.selected[t.ID] = true
			}
			m.setCursor(m.cursor + 1)
		}
	case "X":
		m.selected = map[task.ID]bool{}
	case "c":
		return m.complete(m.targets())
	case "D", "delete":
		return m.remove(m.targets())
	case "C":
		m.prompt(modeNewCategory, "")
	case "R":
		if c, ok := m.activeCategory(); ok {
			m.prompt(modeRenameCategory, c.Name)
		}
	case "ctrl+x":
		if c, ok := m.activeCategory(); ok {
			return m.removeCategory(c)
		}
	case "J":
		return m.reorder(1)
	case "K":
		return m.reorder(-1)
	}
	return nil
}

func (m *app) prompt(md mode, value string) {
	m.mode = md
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

// handle keys while one of the inputs is open
func (m *app) inputUpdate(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	if m.mode == modeDue {
		if msg.Type == tea.KeyEnter {
			return m.submitDue()
		}
		m.due, cmd = m.due.Update(msg)
		return cmd
	}
	if msg.Type == tea.KeyEnter {
		value := m.input.Value()
		md := m.mode
		m.mode = modeNormal
		m.input.Blur()
		return m.submit(md, value)
	}
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		m.search = m.input.Value()
		m.apply()
		m.setCursor(0)
	}
	return cmd
}

func (m *app) submit(md mode, value string) tea.Cmd {
	store := m.store
	switch md {
	case modeAdd:
		r := quickadd.Parse(value, m.now())
		if !r.Valid() {
			m.setStatus("nothing to add, the title is empty", true)
			return nil
		}
		in := r.NewTask()
		if id, err := strconv.Atoi(m.tabs.Active().Key); err == nil {
			category := task.ID(id)
			in.CategoryID = &category
		}
		return m.exec(func() doneMsg {
			t, err := store.CreateTask(in)
			return doneMsg{info: fmt.Sprintf("added %q (%s)", t.Title, t.Priority), focus: t.ID, err: err}
		})
	case modeRename:
		id := m.editing
		return m.exec(func() doneMsg {
			_, err := store.UpdateTask(id, task.TaskPatch{Title: &value})
			return doneMsg{info: "renamed", focus: id, err: err}
		})
	case modeMove:
		ids := m.targets()
		var category *task.ID
		name := "no category"
		if strings.TrimSpace(value) != "" {
			c, ok := task.FindCategory(m.categories, value)
			if !ok {
				m.setStatus(fmt.Sprintf("no category matches %q", value), true)
				return nil
			}
			category, name = &c.ID, c.Name
		}
		m.selected = map[task.ID]bool{}
		return m.exec(func() doneMsg {
			n := store.BulkUpdateCategory(ids, category)
			return doneMsg{info: fmt.Sprintf("moved %d to %s", n, name)}
		})
	case modeNewCategory:
		in := task.NewCategory{Name: value, Color: task.NextColor(m.categories)}
		return m.exec(func() doneMsg {
			c, err := store.CreateCategory(in)
			return doneMsg{info: fmt.Sprintf("added category %q", c.Name), err: err}
		})
	case modeRenameCategory:
		c, ok := m.activeCategory()
		if !ok {
			return nil
		}
		return m.exec(func() doneMsg {
			_, err := store.UpdateCategory(c.ID, task.CategoryPatch{Name: &value})
			return doneMsg{info: "category renamed", err: err}
		})
	}
	return nil
}

// activeCategory is the category of the selected tab, if it is one
func (m *app) activeCategory() (task.Category, bool) {
	id, err := strconv.Atoi(m.tabs.Active().Key)
	if err != nil {
		return task.Category{}, false
	}
	for _, c := range m.categories {
		if c.ID == task.ID(id) {
			return c, true
		}
	}
	return task.Category{}, false
}

// removeCategory deletes a category, its tasks stay without one
func (m *app) removeCategory(c task.Category) tea.Cmd {
	m.tabs.Set(0)
	store := m.store
	return m.exec(func() doneMsg {
		freed := len(store.TasksByCategory(c.ID))
		err := store.DeleteCategory(c.ID)
		return doneMsg{info: fmt.Sprintf("deleted %s, %d tasks uncategorized", c.Name, freed), err: err}
	})
}

func (m *app) submitDue() tea.Cmd {
	if !m.due.Valid() {
		m.setStatus(fmt.Sprintf("cannot read %q as a date", m.due.Text()), true)
		return nil
	}
	m.mode = modeNormal
	id := m.editing
	patch := task.TaskPatch{DueDate: m.due.Value(), ClearDueDate: m.due.Value() == nil}
	store := m.store
	return m.exec(func() doneMsg {
		_, err := store.UpdateTask(id, patch)
		return doneMsg{info: "due date updated", focus: id, err: err}
	})
}

func (m *app) cyclePriority(t task.Task) tea.Cmd {
	next := t.Priority.Next()
	store := m.store
	return m.exec(func() doneMsg {
		_, err := store.UpdateTask(t.ID, task.TaskPatch{Priority: &next})
		return doneMsg{info: "priority " + string(next), focus: t.ID, err: err}
	})
}

func (m *app) toggle(id task.ID) tea.Cmd {
	store := m.store
	return m.exec(func() doneMsg {
		t, err := store.ToggleComplete(id)
		info := "reopened"
		if t.Completed {
			info = "completed"
		}
		return doneMsg{info: info, focus: id, err: err}
	})
}

func (m *app) complete(ids []task.ID) tea.Cmd {
	if len(ids) == 0 {
		return nil
	}
	m.selected = map[task.ID]bool{}
	store := m.store
	return m.exec(func() doneMsg {
		n := store.BulkComplete(ids)
		return doneMsg{info: fmt.Sprintf("completed %d", n)}
	})
}

func (m *app) remove(ids []task.ID) tea.Cmd {
	if len(ids) == 0 {
		return nil
	}
	m.selected = map[task.ID]bool{}
	store := m.store
	if len(ids) == 1 {
		return m.exec(func() doneMsg {
			return doneMsg{info: "deleted", err: store.DeleteTask(ids[0])}
		})
	}
	return m.exec(func() doneMsg {
		n := store.BulkDelete(ids)
		return doneMsg{info: fmt.Sprintf("deleted %d", n)}
	})
}

// reorder swaps the task under the cursor with its visible neighbour in the
// store order. The list stays sorted, so only ties visibly move.
func (m *app) reorder(delta int) tea.Cmd {
	t, ok := m.cursorTask()
	j := m.cursor + delta
	if !ok || j < 0 || j >= len(m.visible) {
		return nil
	}
	neighbour := m.visible[j].ID
	index := slices.IndexFunc(m.tasks, func(t task.Task) bool { return t.ID == neighbour })
	if index == -1 {
		return nil
	}
	store := m.store
	return m.exec(func() doneMsg {
		_, err := store.UpdatePosition(t.ID, index)
		return doneMsg{focus: t.ID, err: err}
	})
}

// targets are the selected tasks, or the one under the cursor
func (m *app) targets() []task.ID {
	if len(m.selected) > 0 {
		ids := make([]task.ID, 0, len(m.selected))
		for id := range m.selected {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		return ids
	}
	if t, ok := m.cursorTask(); ok {
		return []task.ID{t.ID}
	}
	return nil
}

func (m *app) options() filter.Options {
	return filter.Options{
		Category: m.tabs.Active().Key,
		Search:   m.search,
		Priority: priorityFilters[m.priority],
		Date:     filter.DateBuckets[m.date],
	}
}

// apply recomputes tabs, counters and the visible tasks from the snapshot
func (m *app) apply() {
	now := m.now()
	counts := stats.Count(m.tasks, m.categories, now)
	tabs := []ui.Tab{
		{Key: filter.All, Label: "All", Count: counts.All},
		{Key: filter.Today, Label: "Today", Count: counts.Today},
		{Key: filter.Upcoming, Label: "Upcoming", Count: counts.Upcoming},
		{Key: filter.Completed, Label: "Completed", Count: counts.Completed},
	}
	for _, c := range m.categories {
		tabs = append(tabs, ui.Tab{
			Key:   strconv.Itoa(int(c.ID)),
			Label: c.Name,
			Count: counts.ByCategory[c.ID],
			Color: ui.CategoryColor(&c),
		})
	}
	m.tabs.SetTabs(tabs)

	s := stats.Summarize(m.tasks, now)
	m.tabs.Info = fmt.Sprintf("%d/%d done %d%%", s.Completed, s.Total, s.CompletionRate)
	if s.DueToday > 0 {
		m.tabs.Info += lipgloss.NewStyle().Foreground(ui.Orange).Render(fmt.Sprintf(" · %d today", s.DueToday))
	}
	if s.Overdue > 0 {
		m.tabs.Info += lipgloss.NewStyle().Foreground(ui.Red).Render(fmt.Sprintf(" · %d overdue", s.Overdue))
	}

	m.visible = filter.Apply(m.tasks, m.options(), now)
	filter.Sort(m.visible)

	for id := range m.selected {
		if !slices.ContainsFunc(m.tasks, func(t task.Task) bool { return t.ID == id }) {
			delete(m.selected, id)
		}
	}
	m.setCursor(m.cursor)
}

func (m *app) cursorTask() (task.Task, bool) {
	if m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m *app) setCursorTo(id task.ID) {
	if i := slices.IndexFunc(m.visible, func(t task.Task) bool { return t.ID == id }); i != -1 {
		m.setCursor(i)
	}
}

// setCursor clamps the cursor and scrolls it into view
func (m *app) setCursor(value int) {
	m.cursor = clamp(value, 0, max(len(m.visible)-1, 0))
	if m.viewport.Height <= 0 {
		return
	}
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.YOffset = m.cursor - m.viewport.Height + 1
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.YOffset = m.cursor
	}
}

func (m *app) category(t task.Task) *task.Category {
	if t.CategoryID == nil {
		return nil
	}
	for i := range m.categories {
		if m.categories[i].ID == *t.CategoryID {
			return &m.categories[i]
		}
	}
	return nil
}

func (m *app) render() {
	now := m.now()
	rows := make([]string, len(m.visible))
	for i, t := range m.visible {
		rows[i] = ui.Row{
			Task:     t,
			Category: m.category(t),
			Cursor:   i == m.cursor,
			Selected: m.selected[t.ID],
			Now:      now,
		}.View()
	}
	if len(rows) == 0 {
		rows = append(rows, label.Render("  nothing here, press a to add a task"))
	}
	offset := m.viewport.YOffset
	m.viewport.SetContent(strings.Join(rows, "\n"))
	m.viewport.SetYOffset(offset)
}

func (m *app) filtersLine() string {
	parts := []string{
		label.Render("priority: ") + priorityFilters[m.priority],
		label.Render("due: ") + filter.DateBuckets[m.date],
	}
	if m.search != "" {
		parts = append(parts, label.Render("search: ")+m.search)
	}
	if n := len(m.selected); n > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(ui.Blue).Render(fmt.Sprintf("%d selected", n)))
	}
	line := " " + strings.Join(parts, ui.TaskDivider)
	if m.pending > 0 {
		line += " " + m.spinner.View()
	}
	return line
}

func (m *app) statusLine() string {
	switch m.mode {
	case modeAdd:
		return label.Render(" add: ") + m.input.View()
	case modeRename:
		return label.Render(" rename: ") + m.input.View()
	case modeSearch:
		return label.Render(" /") + m.input.View()
	case modeMove:
		return label.Render(" move to (empty for none): ") + m.input.View()
	case modeNewCategory:
		return label.Render(" new category: ") + m.input.View()
	case modeRenameCategory:
		return label.Render(" rename category: ") + m.input.View()
	case modeDue:
		return " " + m.due.View()
	}
	if m.statusErr {
		return statusError.Render(" " + m.status)
	}
	return statusInfo.Render(" " + m.status)
}

func (m *app) helpLine() string {
	if m.mode != modeNormal {
		return help.Render(" enter confirm · esc cancel")
	}
	return help.Render(" a add · i rename · d due · p priority · space done · x select · c complete · D delete · m move · C/R/ctrl+x category · J/K reorder · / search · P/F filters · tab switch · q quit")
}

func (m *app) View() string {
	return m.tabs.View() + m.filtersLine() + "\n" + m.viewport.View() + "\n" + m.statusLine() + "\n" + m.helpLine()
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}
