package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/td0m/taskflow/pkg/task"
	"github.com/td0m/taskflow/pkg/task/date"
)

func (c *cli) showCmd() *cobra.Command {
	var (
		meta  bool
		style string
	)
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task with its description rendered as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			t, err := c.store.Task(task.ID(id))
			if err != nil {
				return err
			}
			now := c.now()
			out := cmd.OutOrStdout()

			titleStyle := color.New(color.FgCyan, color.Bold).SprintFunc()
			fieldStyle := color.New(color.FgHiGreen).SprintFunc()

			fmt.Fprintf(out, "[%v] %v\n", titleStyle(t.ID), titleStyle(t.Title))
			fmt.Fprintln(out, strings.Repeat("-", 50))
			status := "open"
			if t.Completed {
				status = "done " + humanize.RelTime(*t.CompletedAt, now, "ago", "from now")
			}
			fmt.Fprintf(out, "Status: %v\n", fieldStyle(status))
			fmt.Fprintf(out, "Priority: %v\n", fieldStyle(t.Priority))
			if t.DueDate != nil {
				fmt.Fprintf(out, "Due: %v\n", fieldStyle(t.DueDate.Format(time.DateOnly)+" ("+date.Format(t.DueDate, now)+")"))
			}
			if t.CategoryID != nil {
				if cat, err := c.store.Category(*t.CategoryID); err == nil {
					fmt.Fprintf(out, "Category: %v\n", fieldStyle(cat.Name))
				}
			}
			fmt.Fprintf(out, "Created: %v\n", fieldStyle(humanize.RelTime(t.CreatedAt, now, "ago", "from now")))

			if meta || strings.TrimSpace(t.Description) == "" {
				return nil
			}
			rendered, err := glamour.Render(t.Description, style)
			if err != nil {
				c.log.Warn("rendering description", "id", t.ID, "error", err)
				fmt.Fprintln(out, t.Description)
				return nil
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}
	cmd.Flags().BoolVar(&meta, "meta", false, "Skip the description")
	cmd.Flags().StringVar(&style, "style", "dark", "Markdown style: dark, light, notty, ascii")
	return cmd
}
