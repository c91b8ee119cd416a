package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/taskflow/pkg/task"
	"github.com/td0m/taskflow/pkg/task/date"
)

var (
	TaskIcon      = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	TaskTitle     = lipgloss.NewStyle().Bold(true)
	DoneTitle     = lipgloss.NewStyle().Foreground(Faded).Strikethrough(true)
	TaskDivider   = lipgloss.NewStyle().Foreground(Faded).Padding(0, 1).Render("∙")
	SelectedMark  = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	CursorLine    = lipgloss.NewStyle().Background(Faded)
	TaskSecondary = lipgloss.NewStyle().Foreground(Secondary)
)

// Row renders a single task line
type Row struct {
	Task     task.Task
	Category *task.Category
	Cursor   bool
	Selected bool
	Now      time.Time
}

func (r Row) View() string {
	t := r.Task

	mark := "  "
	if r.Selected {
		mark = SelectedMark.Render("▍ ")
	}

	check := "○"
	if t.Completed {
		check = "✓"
	}
	s := mark + TaskIcon.Foreground(PriorityColor(t.Priority)).Render(check)

	title := TaskTitle
	if t.Completed {
		title = DoneTitle
	}
	if r.Cursor {
		title = title.Background(Faded)
	}
	s += title.Render(t.Title)

	if r.Category != nil {
		s += TaskDivider
		s += lipgloss.NewStyle().Foreground(CategoryColor(r.Category)).Render("● " + r.Category.Name)
	}
	if t.DueDate != nil {
		status := date.GetStatus(t.DueDate, r.Now)
		if t.Completed {
			status = date.None
		}
		s += TaskDivider
		s += lipgloss.NewStyle().Foreground(DueColor(status)).Render(date.Format(t.DueDate, r.Now))
	}
	return s
}
