// Package logging configures the process-wide structured logger.
//
// The TUI owns stdout, so log output goes to a file under the configured log
// directory. Stores and the API layer log through slog's default logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Init installs the default slog logger writing to the given file path.
// The returned func closes the log file.
func Init(level, format, path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	InitWriter(level, format, file)
	return func() { _ = file.Close() }, nil
}

// InitWriter installs the default slog logger on an arbitrary writer.
func InitWriter(level, format string, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: level == "debug",
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts string level to slog.Level
func parseLevel(level string) slog.Level {
	switch level {
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
