package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/taskflow/pkg/task"
	"github.com/td0m/taskflow/pkg/task/date"
)

const (
	Background = lipgloss.Color("#000")

	Primary   = lipgloss.Color("#fff")
	Secondary = lipgloss.Color("#888")
	Faded     = lipgloss.Color("#555")

	Blue   = lipgloss.Color("#4db7ff")
	Green  = lipgloss.Color("#00a352")
	Red    = lipgloss.Color("#c42912")
	Yellow = lipgloss.Color("#c4b810")
	Orange = lipgloss.Color("#c27510")
)

func PriorityColor(p task.Priority) lipgloss.Color {
	switch p {
	case task.High:
		return Red
	case task.Medium:
		return Yellow
	case task.Low:
		return Green
	}
	return Faded
}

// DueColor highlights dates that need attention
func DueColor(s date.Status) lipgloss.Color {
	switch s {
	case date.Overdue:
		return Red
	case date.Today:
		return Orange
	case date.Tomorrow:
		return Yellow
	case date.ThisWeek:
		return Blue
	}
	return Secondary
}

// CategoryColor uses the category's own hex color when it has one
func CategoryColor(c *task.Category) lipgloss.Color {
	if c == nil || c.Color == "" {
		return Faded
	}
	return lipgloss.Color(c.Color)
}
