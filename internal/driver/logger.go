package driver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"skc/internal/arena"
)

// Logger wraps slog.Logger with the attribute names used by the pipeline.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger over handler. A nil handler logs text to
// stderr at warn level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger writes human-readable logs to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))
}

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
}

// WithFile tags every record with the source file.
func (l *Logger) WithFile(path string) *Logger {
	return &Logger{Logger: l.With("file", path)}
}

// LogPhase logs the end of a pipeline phase.
func (l *Logger) LogPhase(ctx context.Context, phase string, err error, attrs ...any) {
	if err != nil {
		l.ErrorContext(ctx, "phase failed", append([]any{"phase", phase, "error", err}, attrs...)...)
		return
	}
	l.DebugContext(ctx, "phase done", append([]any{"phase", phase}, attrs...)...)
}

// LogArena logs the arena occupancy.
func (l *Logger) LogArena(ctx context.Context, s arena.Stats) {
	l.InfoContext(ctx, "arena",
		"regions", s.Regions,
		"used", s.Used,
		"capacity", s.Capacity,
		"aligned", s.Aligned,
	)
}
