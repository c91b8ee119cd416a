package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/td0m/taskflow/internal/config"
	"github.com/td0m/taskflow/internal/logger"
	"github.com/td0m/taskflow/internal/session"
	"github.com/td0m/taskflow/pkg/task"
	"github.com/td0m/taskflow/pkg/task/date"
)

// cli holds the state shared by every command of one invocation
type cli struct {
	configPath string
	seedPath   string
	nowFlag    string
	verbose    bool

	clock  func() time.Time
	store  *task.Store
	log    *slog.Logger
	closer io.Closer
}

func newRootCmd(clock func() time.Time) *cobra.Command {
	c := &cli{clock: clock}
	root := &cobra.Command{
		Use:   "taskflow",
		Short: "Filter, sort and summarize tasks from a seed dataset",
		Long: `taskflow loads a seed dataset into an in-memory session and runs one
command against it. Nothing is written back; use export to keep a snapshot.`,
		SilenceUsage:       true,
		PersistentPreRunE:  c.open,
		PersistentPostRunE: c.close,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to config file")
	root.PersistentFlags().StringVar(&c.seedPath, "seed", "", "Path to a json or yaml seed file, overrides the config")
	root.PersistentFlags().StringVar(&c.nowFlag, "now", "", "Evaluate dates as if today were this day")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log to stderr at the configured level")

	root.AddCommand(
		c.listCmd(),
		c.showCmd(),
		c.statsCmd(),
		c.categoriesCmd(),
		c.parseCmd(),
		c.addCmd(),
		c.exportCmd(),
	)
	return root
}

func (c *cli) open(cmd *cobra.Command, _ []string) error {
	if c.nowFlag != "" {
		day, err := date.Parse(c.nowFlag, c.clock())
		if err != nil {
			return fmt.Errorf("--now: %w", err)
		}
		c.clock = func() time.Time { return day }
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.seedPath != "" {
		cfg.Seed = c.seedPath
	}
	if !c.verbose && cfg.Log.File == "" {
		cfg.Log.Level = "warn"
	}
	c.log, c.closer, err = logger.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	c.store, err = session.Open(cfg, c.log, c.clock)
	return err
}

func (c *cli) close(*cobra.Command, []string) error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *cli) now() time.Time {
	return c.clock()
}

func main() {
	if err := newRootCmd(time.Now).Execute(); err != nil {
		os.Exit(1)
	}
}
