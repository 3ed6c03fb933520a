// Package logging configures the process-wide slog logger for Burrow
// binaries. Resolution internals log through slog as well, so configuring
// here controls the whole process.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls logger construction.
type Config struct {
	// Level is one of DEBUG, INFO, WARN(ING), ERROR (case-insensitive).
	// Anything else falls back to INFO.
	Level string

	// Format selects the handler: "json" for structured JSON output,
	// anything else for key=value text.
	Format string

	// IncludePID attaches the process ID to every record.
	IncludePID bool

	// Fields are static attributes attached to every record, e.g. an
	// instance name when several daemons share a log sink.
	Fields map[string]string

	// Output overrides the destination. Defaults to stderr.
	Output io.Writer
}

// Configure builds a logger from cfg, installs it as the slog default, and
// returns it.
func Configure(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	attrs := make([]slog.Attr, 0, len(cfg.Fields)+1)
	for k, v := range cfg.Fields {
		attrs = append(attrs, slog.String(k, v))
	}
	if cfg.IncludePID {
		attrs = append(attrs, slog.Int("pid", os.Getpid()))
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
