// Package logging builds the process-wide structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a *slog.Logger writing JSON to stderr and optionally to logFile,
// and installs it as the slog default so package-level slog calls route to the
// same handler. The returned cleanup func closes the log file if one was
// opened; callers must defer it.
func New(level, logFile string) (*slog.Logger, func(), error) {
	var w io.Writer = os.Stderr
	cleanup := func() {}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, err
		}
		w = io.MultiWriter(os.Stderr, f)
		cleanup = func() { _ = f.Close() }
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	logger := slog.New(handler).With("app", "homesheet")
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
