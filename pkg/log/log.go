package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

var (
	defaultLogLevel slog.LevelVar
	defaultLogger   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: &defaultLogLevel,
	}))
)

func init() {
	defaultLogLevel.Set(slog.LevelInfo)
}

type contextKey struct{}

var loggerKey = contextKey{}

// Ctx returns the logger from the context. If no logger is found, it returns the default logger.
func Ctx(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}

// With returns a new context with the given logger.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func SetDefaultLogLevel(level slog.Level) {
	defaultLogLevel.Set(level)
}

// Configure replaces the default logger with one writing the given format
// ("text" or "json") to w. The level stays tied to SetDefaultLogLevel.
func Configure(w io.Writer, format string) error {
	opts := &slog.HandlerOptions{Level: &defaultLogLevel}
	switch format {
	case "text", "":
		defaultLogger = slog.New(slog.NewTextHandler(w, opts))
	case "json":
		opts.AddSource = true
		defaultLogger = slog.New(slog.NewJSONHandler(w, opts))
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}
	slog.SetDefault(defaultLogger)
	return nil
}
