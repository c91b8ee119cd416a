package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	tabContainer = lipgloss.NewStyle().Padding(1, 1)
	activeTab    = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	inactiveTab  = lipgloss.NewStyle().Foreground(Secondary)
	tabDivider   = lipgloss.NewStyle().Foreground(Faded)
	tabCount     = lipgloss.NewStyle().Foreground(Faded)
)

// Tab is one entry of the tab bar. Key identifies it to the caller,
// Color marks the tab with a dot when set.
type Tab struct {
	Key   string
	Label string
	Count int
	Color lipgloss.Color
}

type Tabs struct {
	tabs []Tab
	i    int

	Width int
	Info  string
}

// NewTabs creates a new tabs ui bubbletea model
func NewTabs(tabs []Tab) Tabs {
	return Tabs{tabs: tabs}
}

func (m Tabs) Init() tea.Cmd {
	return nil
}

// Update cycles tabs with tab and shift+tab
func (m Tabs) Update(msg tea.Msg) (Tabs, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyTab:
			m.Set((m.i + 1) % max(len(m.tabs), 1))
		case tea.KeyShiftTab:
			m.Set((m.i - 1 + len(m.tabs)) % max(len(m.tabs), 1))
		}
	}
	return m, nil
}

func (m Tabs) View() string {
	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		r := inactiveTab
		if i == m.i {
			r = activeTab
		}
		label := t.Label
		if t.Color != "" {
			label = lipgloss.NewStyle().Foreground(t.Color).Render("●") + " " + r.Render(label)
		} else {
			label = r.Render(label)
		}
		tabs[i] = label + " " + tabCount.Render(strconv.Itoa(t.Count))
	}
	w := lipgloss.Width
	left := strings.Join(tabs, tabDivider.Render(" | "))
	right := m.Info
	space := lipgloss.NewStyle().Width(max(m.Width-2-w(left)-w(right), 0)).Render("")
	return tabContainer.Render(lipgloss.JoinHorizontal(lipgloss.Center, left, space, right)) + "\n"
}

func (m Tabs) Value() int {
	return m.i
}

// Active returns the selected tab, the zero Tab when there are none
func (m Tabs) Active() Tab {
	if len(m.tabs) == 0 {
		return Tab{}
	}
	return m.tabs[m.i]
}

func (m *Tabs) Set(i int) {
	m.i = min(max(i, 0), max(len(m.tabs)-1, 0))
}

// SetTabs replaces the tabs, keeping the selection on the same key if it
// still exists
func (m *Tabs) SetTabs(tabs []Tab) {
	key := m.Active().Key
	m.tabs = tabs
	for i, t := range tabs {
		if t.Key == key {
			m.i = i
			return
		}
	}
	m.Set(m.i)
}
