package adaptgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with adaptgo-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithQubits adds a qubit-count field to the logger.
func (l *Logger) WithQubits(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("qubits", n),
	}
}

// WithPoolSize adds a pool-size field to the logger.
func (l *Logger) WithPoolSize(size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("pool_size", size),
	}
}

// WithRound adds an adaptation-round field to the logger.
func (l *Logger) WithRound(round int) *Logger {
	return &Logger{
		Logger: l.Logger.With("round", round),
	}
}

// LogOptimization logs one parameter-optimization pass.
func (l *Logger) LogOptimization(ctx context.Context, params int, energy float64, converged bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "optimization failed",
			"params", params,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "optimization completed",
			"params", params,
			"energy", energy,
			"converged", converged,
		)
	}
}

// LogAdaptation logs one operator-selection pass.
func (l *Logger) LogAdaptation(ctx context.Context, grown bool, params int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "adaptation failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "adaptation completed",
			"grown", grown,
			"params", params,
		)
	}
}

// LogRun logs the outcome of a full run.
func (l *Logger) LogRun(ctx context.Context, converged bool, rounds, params int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"rounds", rounds,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "run completed",
			"converged", converged,
			"rounds", rounds,
			"params", params,
		)
	}
}

// LogSnapshot logs a trace snapshot operation.
func (l *Logger) LogSnapshot(ctx context.Context, name string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"name", name,
			"bytes", size,
		)
	}
}
