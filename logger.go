package vectree

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with vectree-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithInstance adds the DB instance id to the logger.
func (l *Logger) WithInstance(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("instance", id),
	}
}

// WithKind adds the index kind to the logger.
func (l *Logger) WithKind(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogAdd logs an AddData call.
func (l *Logger) LogAdd(ctx context.Context, count, total int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "add failed",
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "add completed",
			"count", count,
			"total", total,
		)
	}
}

// LogRemove logs a RemoveData call.
func (l *Logger) LogRemove(ctx context.Context, requested, removed int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "remove failed",
			"requested", requested,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "remove completed",
			"requested", requested,
			"removed", removed,
		)
	}
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"k", k,
			"results", resultsFound,
		)
	}
}

// LogRebuild logs a tree rebuild.
func (l *Logger) LogRebuild(ctx context.Context, generation uint64, vectors int, duration time.Duration) {
	l.InfoContext(ctx, "tree rebuilt",
		"generation", generation,
		"vectors", vectors,
		"duration", duration,
	)
}

// LogIngest logs a dataset ingestion.
func (l *Logger) LogIngest(ctx context.Context, source string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "ingest failed",
			"source", source,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "ingest completed",
			"source", source,
			"count", count,
		)
	}
}
