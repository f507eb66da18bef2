// logger carries the *slog.Logger of a run in its context.Context.
// Records are formatted by github.com/charmbracelet/log.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

var loggerKey = &contextKey{}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// WithDefaultLogger returns a copy of ctx carrying DefaultLogger().
func WithDefaultLogger(ctx context.Context) context.Context {
	return WithLogger(ctx, DefaultLogger())
}

// FromContext returns the logger stored by WithLogger, or
// DefaultLogger() if ctx has none. It never returns nil.
func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok {
		return DefaultLogger()
	}
	return l
}

// DefaultLogger logs at info level to stderr.
func DefaultLogger() *slog.Logger {
	return New(os.Stderr, false)
}

// New returns a charmbracelet/log backed slog.Logger writing to w,
// at debug level if verbose is true.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return slog.New(log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           level,
	}))
}

// Discard returns a logger that drops everything, for tests.
func Discard() *slog.Logger {
	return New(io.Discard, false)
}
