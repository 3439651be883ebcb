// Package logging configures the structured logger shared by the game.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu       sync.Mutex
	logFile  *os.File
	logger   *slog.Logger
	levelVar = &slog.LevelVar{}
)

// Options controls where log records go.
type Options struct {
	Path  string    // Log file path; parent directories are created. Empty means console only.
	Level string    // debug, info, warn or error
	Out   io.Writer // Console writer, defaults to os.Stdout
}

// Setup builds the process logger. Calling it again replaces the previous
// logger and closes the previous log file.
func Setup(opts Options) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	closeFileLocked()

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	writer := out

	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err == nil {
			f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				logFile = f
				writer = io.MultiWriter(out, f)
			}
		}
	}

	levelVar.Set(ParseLevel(opts.Level))
	logger = slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     levelVar,
		AddSource: false,
	}))
	return logger
}

// Logger returns the process logger, building a console logger on first use.
func Logger() *slog.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l != nil {
		return l
	}
	return Setup(Options{Level: "info"})
}

// SetLevel changes the minimum level of the process logger.
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

// SetRawLevel parses and applies a level name such as "debug" or "warn".
func SetRawLevel(raw string) {
	levelVar.Set(ParseLevel(raw))
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// FilePath is the open log file, or "" when logging to the console only.
func FilePath() string {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return ""
	}
	return logFile.Name()
}

// Close flushes and closes the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
}

func closeFileLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
