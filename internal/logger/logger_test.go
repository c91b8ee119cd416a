package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/td0m/taskflow/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("text to fallback", func(t *testing.T) {
		is := is.New(t)
		var buf bytes.Buffer
		log, closer, err := New(config.Log{Level: "info", Format: "text"}, &buf)
		is.NoErr(err)
		defer closer.Close()

		log.Debug("hidden")
		log.Info("task created", "id", 4)
		out := buf.String()
		is.True(!strings.Contains(out, "hidden"))
		is.True(strings.Contains(out, "msg=\"task created\" id=4"))
	})

	t.Run("json", func(t *testing.T) {
		is := is.New(t)
		var buf bytes.Buffer
		log, _, err := New(config.Log{Level: "debug", Format: "json"}, &buf)
		is.NoErr(err)
		log.Debug("task moved", "to", 2)

		var record map[string]any
		is.NoErr(json.Unmarshal(buf.Bytes(), &record))
		is.Equal(record["msg"], "task moved")
		is.Equal(record["level"], "DEBUG")
		is.Equal(record["to"], float64(2))
	})

	t.Run("rotating file", func(t *testing.T) {
		is := is.New(t)
		path := filepath.Join(t.TempDir(), "logs", "taskflow.log")
		var buf bytes.Buffer
		log, closer, err := New(config.Log{Level: "info", File: path, MaxSize: 1}, &buf)
		is.NoErr(err)
		log.Warn("disk is fine")
		is.NoErr(closer.Close())

		is.Equal(buf.Len(), 0)
		content, err := os.ReadFile(path)
		is.NoErr(err)
		is.True(strings.Contains(string(content), "disk is fine"))
	})
}

func TestParseLevel(t *testing.T) {
	is := is.New(t)
	is.Equal(ParseLevel("debug"), slog.LevelDebug)
	is.Equal(ParseLevel("WARN"), slog.LevelWarn)
	is.Equal(ParseLevel("error"), slog.LevelError)
	is.Equal(ParseLevel("info"), slog.LevelInfo)
	is.Equal(ParseLevel("chatty"), slog.LevelInfo)
}
