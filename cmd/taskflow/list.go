package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/td0m/taskflow/pkg/task"
	"github.com/td0m/taskflow/pkg/task/date"
	"github.com/td0m/taskflow/pkg/task/filter"
)

func (c *cli) listCmd() *cobra.Command {
	var (
		o     = filter.Default()
		limit int
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, incomplete first, by priority then due date",
		Example: `  taskflow list --category today
  taskflow list -c work -p high
  taskflow list --due overdue -q report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories := c.store.Categories()
			category, err := resolveCategory(categories, o.Category)
			if err != nil {
				return err
			}
			opts := o
			opts.Category = category
			if opts.Priority != filter.All {
				p, err := task.ParsePriority(opts.Priority)
				if err != nil {
					return err
				}
				opts.Priority = string(p)
			}

			now := c.now()
			tasks := filter.Apply(c.candidates(opts), opts, now)
			filter.Sort(tasks)
			if limit > 0 && len(tasks) > limit {
				tasks = tasks[:limit]
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks match.")
				return nil
			}
			renderTasks(cmd, tasks, categories, c)
			return nil
		},
	}
	cmd.Flags().StringVarP(&o.Category, "category", "c", filter.All, "all, today, upcoming, completed, or a category name or id")
	cmd.Flags().StringVarP(&o.Search, "search", "q", "", "Search titles and descriptions")
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", filter.All, "all, high, medium or low")
	cmd.Flags().StringVarP(&o.Date, "due", "d", filter.All, "Due bucket: "+strings.Join(filter.DateBuckets, ", "))
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many tasks, 0 for all")
	return cmd
}

// candidates narrows the store down with its own queries before the full
// filter runs
func (c *cli) candidates(o filter.Options) []task.Task {
	switch {
	case o.Search != "":
		return c.store.SearchTasks(o.Search)
	case o.Priority != "" && o.Priority != filter.All:
		return c.store.TasksByPriority(task.Priority(o.Priority))
	}
	if id, err := strconv.Atoi(o.Category); err == nil {
		return c.store.TasksByCategory(task.ID(id))
	}
	return c.store.Tasks()
}

// resolveCategory maps a flag value to a filter value: quick filters pass
// through, anything else must name a category
func resolveCategory(categories []task.Category, ref string) (string, error) {
	switch ref {
	case "", filter.All, filter.Today, filter.Upcoming, filter.Completed:
		return ref, nil
	}
	c, ok := task.FindCategory(categories, ref)
	if !ok {
		return "", fmt.Errorf("no category matches %q", ref)
	}
	return strconv.Itoa(int(c.ID)), nil
}

func renderTasks(cmd *cobra.Command, tasks []task.Task, categories []task.Category, c *cli) {
	now := c.now()
	names := map[task.ID]string{}
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = false
	t.AppendHeader(table.Row{
		text.FgGreen.Sprint("ID"),
		"",
		text.FgGreen.Sprint(text.Bold.Sprint("Title")),
		text.FgGreen.Sprint("Priority"),
		text.FgGreen.Sprint("Due"),
		text.FgGreen.Sprint("Category"),
		text.FgGreen.Sprint("Created"),
	})
	for _, tk := range tasks {
		done := " "
		title := tk.Title
		if tk.Completed {
			done = text.FgHiGreen.Sprint("✓")
			title = text.Faint.Sprint(title)
		}
		category := ""
		if tk.CategoryID != nil {
			category = names[*tk.CategoryID]
		}
		created := ""
		if !tk.CreatedAt.IsZero() {
			created = humanize.RelTime(tk.CreatedAt, now, "ago", "from now")
		}
		t.AppendRow(table.Row{
			tk.ID,
			done,
			title,
			priorityColor(tk.Priority).Sprint(tk.Priority),
			dueColor(date.GetStatus(tk.DueDate, now), tk.Completed).Sprint(date.Format(tk.DueDate, now)),
			category,
			created,
		})
	}
	t.Render()
}

func priorityColor(p task.Priority) text.Colors {
	switch p {
	case task.High:
		return text.Colors{text.FgHiRed}
	case task.Medium:
		return text.Colors{text.FgHiYellow}
	}
	return text.Colors{text.FgHiGreen}
}

func dueColor(s date.Status, completed bool) text.Colors {
	if completed {
		return text.Colors{text.Faint}
	}
	switch s {
	case date.Overdue:
		return text.Colors{text.FgHiRed, text.Bold}
	case date.Today:
		return text.Colors{text.FgHiYellow}
	case date.Tomorrow, date.ThisWeek:
		return text.Colors{text.FgHiBlue}
	}
	return text.Colors{}
}
