package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/td0m/taskflow/pkg/task"
	"github.com/td0m/taskflow/pkg/task/stats"
)

func (c *cli) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cats"},
		Short:   "List categories with their open task counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.renderCategories(cmd)
			return nil
		},
	}
	cmd.AddCommand(c.addCategoryCmd(), c.renameCategoryCmd(), c.removeCategoryCmd())
	return cmd
}

func (c *cli) addCategoryCmd() *cobra.Command {
	var hex string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category, the color defaults to the next one of the palette",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if hex == "" {
				hex = task.NextColor(c.store.Categories())
			}
			created, err := c.store.CreateCategory(task.NewCategory{
				Name:  strings.Join(args, " "),
				Color: hex,
			})
			if err != nil {
				return err
			}
			c.log.Info("category added", "id", created.ID)
			c.renderCategories(cmd)
			return nil
		},
	}
	cmd.Flags().StringVar(&hex, "color", "", "Hex color, e.g. #3B82F6")
	return cmd
}

func (c *cli) renameCategoryCmd() *cobra.Command {
	var hex string
	cmd := &cobra.Command{
		Use:   "rename <category> <name>",
		Short: "Rename a category or change its color",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, ok := task.FindCategory(c.store.Categories(), args[0])
			if !ok {
				return fmt.Errorf("no category matches %q", args[0])
			}
			patch := task.CategoryPatch{Name: task.Ptr(strings.Join(args[1:], " "))}
			if hex != "" {
				patch.Color = &hex
			}
			if _, err := c.store.UpdateCategory(cat.ID, patch); err != nil {
				return err
			}
			c.renderCategories(cmd)
			return nil
		},
	}
	cmd.Flags().StringVar(&hex, "color", "", "New hex color")
	return cmd
}

func (c *cli) removeCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <category>",
		Aliases: []string{"delete"},
		Short:   "Delete a category, its tasks are kept without one",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, ok := task.FindCategory(c.store.Categories(), args[0])
			if !ok {
				return fmt.Errorf("no category matches %q", args[0])
			}
			freed := c.store.TasksByCategory(cat.ID)
			if err := c.store.DeleteCategory(cat.ID); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Deleted %s, %d tasks no longer have a category\n",
				color.New(color.FgCyan, color.Bold).Sprint(cat.Name), len(freed))
			if len(freed) == 0 {
				return nil
			}
			tasks := make([]task.Task, 0, len(freed))
			for _, t := range freed {
				if t, err := c.store.Task(t.ID); err == nil {
					tasks = append(tasks, t)
				}
			}
			renderTasks(cmd, tasks, c.store.Categories(), c)
			return nil
		},
	}
}

func (c *cli) renderCategories(cmd *cobra.Command) {
	categories := c.store.Categories()
	counts := stats.Count(c.store.Tasks(), categories, c.now())

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Name", "Slug", "Color", "Open"})
	for _, cat := range categories {
		t.AppendRow(table.Row{cat.ID, cat.Name, cat.Slug(), cat.Color, counts.ByCategory[cat.ID]})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Open", Align: text.AlignRight},
	})
	t.Render()
}
