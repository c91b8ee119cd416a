// Package session builds the in-memory store a program works on.
package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/td0m/taskflow/internal/config"
	"github.com/td0m/taskflow/pkg/seed"
	"github.com/td0m/taskflow/pkg/task"
)

// Open seeds a store from the configured dataset, or from the embedded one
// when none is configured
func Open(cfg config.Config, log *slog.Logger, now func() time.Time) (*task.Store, error) {
	var (
		ds  seed.Dataset
		err error
	)
	if cfg.Seed == "" {
		ds, err = seed.Default(now())
	} else {
		ds, err = seed.Load(cfg.Seed, now())
	}
	if err != nil {
		return nil, fmt.Errorf("loading seed: %w", err)
	}
	log.Info("session opened",
		"seed", cfg.Seed,
		"tasks", len(ds.Tasks),
		"categories", len(ds.Categories),
		"latency", cfg.Latency,
	)
	return task.NewStore(ds.Tasks, ds.Categories,
		task.WithClock(now),
		task.WithLatency(cfg.Latency),
		task.WithLogger(log),
	), nil
}
