package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/td0m/taskflow/pkg/task/stats"
)

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion and due date counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := c.now()
			tasks := c.store.Tasks()
			categories := c.store.Categories()
			s := stats.Summarize(tasks, now)
			counts := stats.Count(tasks, categories, now)

			out := cmd.OutOrStdout()
			bold := color.New(color.Bold).SprintFunc()
			faint := color.New(color.Faint).SprintFunc()

			fmt.Fprintf(out, "%s %s %d%%\n", bold("Completed"), bar(s.CompletionRate, 20), s.CompletionRate)
			fmt.Fprintf(out, "%-12s %d\n", "Total", s.Total)
			fmt.Fprintf(out, "%-12s %s\n", "Done", color.GreenString("%d", s.Completed))
			fmt.Fprintf(out, "%-12s %s\n", "Due today", color.YellowString("%d", s.DueToday))
			overdue := fmt.Sprint(s.Overdue)
			if s.Overdue > 0 {
				overdue = color.New(color.FgRed, color.Bold).Sprint(s.Overdue)
			}
			fmt.Fprintf(out, "%-12s %s\n", "Overdue", overdue)
			fmt.Fprintf(out, "%-12s %d\n", "Upcoming", counts.Upcoming)

			if len(categories) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, bold("Open by category"))
				for _, cat := range categories {
					fmt.Fprintf(out, "%-12s %d %s\n", cat.Name, counts.ByCategory[cat.ID], faint(cat.Slug()))
				}
			}
			return nil
		},
	}
}

func bar(percent, width int) string {
	filled := percent * width / 100
	return color.GreenString(strings.Repeat("█", filled)) + color.New(color.Faint).Sprint(strings.Repeat("░", width-filled))
}
