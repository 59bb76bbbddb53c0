// Package logger provides structured logging using log/slog.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lululau/calgrid/internal/config"
)

// Setup builds the process logger from configuration, writing to w, and
// installs it as the slog default.
func Setup(cfg *config.Config, w io.Writer) *slog.Logger {
	var handler slog.Handler

	level := parseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// Output picks where logs go. The interactive picker owns the terminal, so it
// logs to LOG_FILE or nowhere; plain output logs to stderr.
// The returned close function is never nil.
func Output(cfg *config.Config, interactive bool) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("open log file: %w", err)
		}
		return f, f.Close, nil
	}
	if interactive {
		return io.Discard, noop, nil
	}
	return os.Stderr, noop, nil
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
