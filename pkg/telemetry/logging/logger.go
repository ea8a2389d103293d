// Package logging builds the process-wide slog logger from the
// telemetry configuration.
package logging

import (
	"io"
	"log/slog"
	"os"

	"verity-hq/scrivener/pkg/config"
)

// New builds a slog.Logger per the logging configuration. Unknown
// levels fall back to info, unknown formats to text. Output goes to w;
// pass nil for stderr.
func New(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
