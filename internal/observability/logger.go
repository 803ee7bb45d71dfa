// Package observability provides the structured logger and Prometheus metrics.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/disaster-map/internal/config"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and sets
// it as the slog default. The shared logger writes to stdout, so when stdout
// carries command output (frames, SVG) the same level and format go to stderr.
func NewLogger(cfg *config.Config, stdoutFree bool) *slog.Logger {
	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if stdoutFree {
		return logger
	}
	logger = redirect(logger, os.Stderr, cfg.LogFormat)
	slog.SetDefault(logger)
	return logger
}

// redirect rebuilds l on w, keeping the level l was configured with.
func redirect(l *slog.Logger, w io.Writer, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: enabledLevel(l)}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// enabledLevel is the lowest standard level l emits.
func enabledLevel(l *slog.Logger) slog.Level {
	for _, lvl := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), lvl) {
			return lvl
		}
	}
	return slog.LevelError
}
