// Package dateinput is a bubbletea text field for due dates. It accepts
// everything date.Parse does and previews the result while typing.
package dateinput

import (
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/taskflow/pkg/task/date"
)

var (
	indicator = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	checkmark = indicator.
			Foreground(lipgloss.AdaptiveColor{Light: "#00ad3b", Dark: "#73F59F"}).
			Render("✓")

	cross = indicator.
		Foreground(lipgloss.AdaptiveColor{Light: "#c42912", Dark: "#FF5047"}).
		Render("✗")

	faded = lipgloss.AdaptiveColor{Light: "#666", Dark: "#999"}
)

type Model struct {
	i     textinput.Model
	now   func() time.Time
	value *time.Time
	valid bool
}

// New creates a focused, empty input. Relative dates are resolved with now.
func New(now func() time.Time) Model {
	i := textinput.New()
	i.Focus()
	i.CharLimit = 20
	i.Prompt = ""
	i.Cursor.SetMode(cursor.CursorStatic)
	i.Placeholder = "tomorrow, fri, in 3 days, 2024-05-01"
	return Model{
		i:     i,
		now:   now,
		valid: true,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update forwards key presses to the text field and reparses its content
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.i, cmd = m.i.Update(msg)
		m.parse()
		return m, cmd
	}
	return m, nil
}

func (m *Model) parse() {
	m.value, m.valid = nil, true
	s := m.i.Value()
	if s == "" {
		return
	}
	t, err := date.Parse(s, m.now())
	if err != nil {
		m.valid = false
		return
	}
	m.value = &t
}

func (m Model) View() string {
	status := ""
	switch {
	case !m.valid:
		status = cross
	case m.value != nil:
		status = checkmark + date.Format(m.value, m.now())
	case m.i.Value() == "":
		status = lipgloss.NewStyle().Foreground(faded).Render(" (clear)")
	}
	return lipgloss.NewStyle().Foreground(faded).Render("due: ") + m.i.View() + status
}

// Value is the parsed date, nil when the field is empty or invalid
func (m Model) Value() *time.Time {
	return m.value
}

// Valid reports whether the text parses. An empty field is valid and
// clears the due date.
func (m Model) Valid() bool {
	return m.valid
}

// SetValue fills the field with an absolute date, nil empties it
func (m *Model) SetValue(t *time.Time) {
	if t == nil {
		m.SetText("")
		return
	}
	m.SetText(t.Format(time.DateOnly))
}

func (m *Model) SetText(s string) {
	m.i.SetValue(s)
	m.i.CursorEnd()
	m.parse()
}

func (m Model) Text() string {
	return m.i.Value()
}
