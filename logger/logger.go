package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"
)

type Config struct {
	Level   string
	Format  string
	File    string
	DevMode bool
}

var level = new(slog.LevelVar)

// Init initializes the global slog logger.
// Logs go to cfg.File when set, otherwise to stderr so stdout stays free for
// the MCP transport. DevMode forces debug level.
func Init(cfg Config) {
	SetLevel(cfg.Level, cfg.DevMode)
	opts := &slog.HandlerOptions{Level: level}

	var w io.Writer = os.Stderr

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			slog.Error("failed to create log directory, using stderr only", "file", cfg.File, "error", err)
		} else {
			f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				slog.Error("failed to open log file, using stderr only", "file", cfg.File, "error", err)
			} else {
				w = f
			}
		}
	}

	slog.SetDefault(slog.New(NewHandler(w, cfg.Format, opts)))
}

// NewHandler returns a JSON handler for format "json" and a text handler otherwise.
func NewHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if strings.ToLower(format) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// SetLevel changes the level of the logger installed by Init.
// devMode pins it to debug regardless of s.
func SetLevel(s string, devMode bool) {
	if devMode {
		level.Set(slog.LevelDebug)
		return
	}
	level.Set(ParseLevel(s))
}

func Level() slog.Level {
	return level.Level()
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewRequestLogger creates a logger with a unique requestId for API handlers.
func NewRequestLogger() *slog.Logger {
	return slog.With("requestId", uuid.Must(uuid.NewV7()).String())
}

// LogPanic logs a recovered panic value with its stack trace.
func LogPanic(r any, msg string, args ...any) {
	args = append(args, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
	slog.Error(msg, args...)
}
