package imgeval

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with imgeval-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithSource adds the image set being processed.
func (l *Logger) WithSource(source string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", source),
	}
}

// WithMetric adds the metric name.
func (l *Logger) WithMetric(metric string) *Logger {
	return &Logger{
		Logger: l.Logger.With("metric", metric),
	}
}

// LogExtraction logs the outcome of building a feature matrix.
func (l *Logger) LogExtraction(ctx context.Context, source string, rows, skipped int, elapsed time.Duration, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "feature extraction failed",
			"source", source,
			"skipped", skipped,
			"error", err,
		)
	case skipped > 0:
		l.WarnContext(ctx, "feature extraction completed with skipped files",
			"source", source,
			"rows", rows,
			"skipped", skipped,
			"elapsed", elapsed,
		)
	default:
		l.InfoContext(ctx, "feature extraction completed",
			"source", source,
			"rows", rows,
			"elapsed", elapsed,
		)
	}
}

// LogSkip logs a file excluded from a feature matrix.
func (l *Logger) LogSkip(ctx context.Context, file string, err error) {
	l.WarnContext(ctx, "skipping image",
		"file", file,
		"error", err,
	)
}

// LogCache logs a feature cache lookup or write.
func (l *Logger) LogCache(ctx context.Context, key, op string, err error) {
	if err != nil {
		l.WarnContext(ctx, "feature cache "+op+" failed",
			"key", key,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "feature cache "+op,
			"key", key,
		)
	}
}

// LogMetric logs a computed metric value.
func (l *Logger) LogMetric(ctx context.Context, metric string, value float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "metric failed",
			"metric", metric,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "metric computed",
			"metric", metric,
			"value", value,
		)
	}
}
