// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/degportal/pkg/config"
)

// LogFileName is the name of the log file in the log directory.
const LogFileName = "degportal.log"

// Init initializes the global slog logger with the given configuration.
// Creates log file in logDir if destination is "file".
// If append is true, appends to existing log file; otherwise creates fresh
// file. The returned closer releases the log file, it is a no-op for stream
// destinations.
func Init(logDir string, cfg config.LogConfig, append bool) (io.Closer, error) {
	writer, closer, err := destination(logDir, cfg.Destination, append)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(NewHandler(writer, cfg)))
	return closer, nil
}

// NewHandler creates a slog handler for the configured format and level.
func NewHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	switch cfg.Format {
	case "text", "tint":
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

func destination(
	logDir, dest string,
	append bool,
) (io.Writer, io.Closer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	case "file":
		logPath := filepath.Join(logDir, LogFileName)
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if append {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		file, err := os.OpenFile(logPath, flags, 0644)
		if err != nil {
			return nil, nil, CreateLogFileError(logPath, err)
		}
		return file, file, nil
	default:
		return os.Stderr, nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// parseLevel converts string level to slog.Level.
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
