package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/td0m/taskflow/internal/config"
	"github.com/td0m/taskflow/internal/logger"
	"github.com/td0m/taskflow/internal/session"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

var (
	configPath = flag.String("config", "", "Path to config file")
	seedPath   = flag.String("seed", "", "Path to a json or yaml seed file, overrides the config")
)

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	if *seedPath != "" {
		cfg.Seed = *seedPath
	}
	// the terminal belongs to the ui
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(os.TempDir(), "taskflow", "tui.log")
	}
	log, closer, err := logger.New(cfg.Log, io.Discard)
	check(err)
	defer closer.Close()

	store, err := session.Open(cfg, log, time.Now)
	check(err)

	p := tea.NewProgram(newApp(store, log, time.Now), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error("ui failed", "error", err)
		closer.Close()
		os.Exit(1)
	}
}
