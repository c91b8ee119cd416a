package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/td0m/taskflow/pkg/quickadd"
	"github.com/td0m/taskflow/pkg/task"
	"github.com/td0m/taskflow/pkg/task/date"
)

func (c *cli) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Show the fields quick add infers from free text",
		Example: `  taskflow parse "Call client tomorrow high priority"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := c.now()
			r := quickadd.Parse(strings.Join(args, " "), now)
			out := cmd.OutOrStdout()
			key := color.New(color.Faint).SprintFunc()

			title := color.New(color.Bold).Sprint(r.Title)
			if !r.Valid() {
				title = color.RedString("(empty)")
			}
			fmt.Fprintf(out, "%s %s\n", key("title:   "), title)
			fmt.Fprintf(out, "%s %s\n", key("priority:"), r.Priority)
			due := "none"
			if r.DueDate != nil {
				due = r.DueDate.Format("2006-01-02") + " (" + date.Format(r.DueDate, now) + ")"
			}
			fmt.Fprintf(out, "%s %s\n", key("due:     "), due)
			return nil
		},
	}
}

func (c *cli) addCmd() *cobra.Command {
	var (
		category string
		due      string
		priority string
		desc     string
	)
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task to the session and show it",
		Long: `add infers the priority and due date from the text like the quick add
field of the terminal ui. Flags override what was inferred.`,
		Example: `  taskflow add "renew passport asap" -c personal
  taskflow add "plan offsite" --due "in 2 weeks" -p low`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := c.now()
			r := quickadd.Parse(strings.Join(args, " "), now)
			if !r.Valid() {
				return errors.New("the title is empty once keywords are removed")
			}
			in := r.NewTask()
			in.Description = desc
			if priority != "" {
				p, err := task.ParsePriority(priority)
				if err != nil {
					return err
				}
				in.Priority = p
			}
			if due != "" {
				d, err := date.Parse(due, now)
				if err != nil {
					return err
				}
				in.DueDate = &d
			}
			categories := c.store.Categories()
			if category != "" {
				cat, ok := task.FindCategory(categories, category)
				if !ok {
					return fmt.Errorf("no category matches %q", category)
				}
				in.CategoryID = &cat.ID
			}

			created, err := c.store.CreateTask(in)
			if err != nil {
				return err
			}
			c.log.Info("task added", "id", created.ID)
			renderTasks(cmd, []task.Task{created}, categories, c)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category name or id")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date, e.g. tomorrow, fri, 2024-05-01")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "high, medium or low")
	cmd.Flags().StringVar(&desc, "description", "", "Longer description")
	return cmd
}
