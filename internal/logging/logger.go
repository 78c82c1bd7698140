// Package logging defines the structured-logging interface used across the
// engine, with log/slog and zap backends.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "session created", "user_id", id, "remember_me", true)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Options select and tune a backend.
type Options struct {
	Format      string // "slog" or "zap"
	Level       string // debug, info, warn, error
	Environment string // development selects human-readable output
}

// New builds a Logger writing to w.
func New(w io.Writer, opts Options) (Logger, error) {
	switch strings.ToLower(opts.Format) {
	case "", "slog":
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slogLevel(opts.Level),
		}))), nil
	case "zap":
		return NewZapWriterLogger(w, opts.Environment, opts.Level), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
}

func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
