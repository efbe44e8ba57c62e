package spikeview

import (
	"context"
	"log/slog"
	"os"

	"github.com/neurotap/spikeview/model"
)

// Logger wraps slog.Logger with spikeview-specific field helpers so all
// extraction logs carry consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler to stderr at info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger with human-readable output to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger with JSON output to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	}))
}

// WithCluster tags the logger with a cluster id.
func (l *Logger) WithCluster(id model.ClusterID) *Logger {
	return &Logger{Logger: l.Logger.With("cluster", int(id))}
}

// LogExtract logs one extraction call.
func (l *Logger) LogExtract(ctx context.Context, view string, clusterID model.ClusterID, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "extraction failed",
			"view", view,
			"cluster", int(clusterID),
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "extraction completed",
		"view", view,
		"cluster", int(clusterID),
		"count", count,
	)
}
