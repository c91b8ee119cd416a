package main

import (
	"github.com/spf13/cobra"
	"github.com/td0m/taskflow/pkg/seed"
)

func (c *cli) exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the session as a seed file with absolute dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds := seed.Dataset{
				Tasks:      c.store.Tasks(),
				Categories: c.store.Categories(),
			}
			return seed.Encode(cmd.OutOrStdout(), seed.Format(format), ds)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(seed.YAML), "yaml or json")
	return cmd
}
