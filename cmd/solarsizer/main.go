package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/raterudder/solarsizer/pkg/config"
	"github.com/raterudder/solarsizer/pkg/log"
	"github.com/raterudder/solarsizer/pkg/planner"
	"github.com/raterudder/solarsizer/pkg/report"

	"github.com/levenlabs/go-lflag"
	"github.com/levenlabs/go-llog"
)

func main() {
	logFormat := lflag.String("log-format", "text", "Log output format (text or json)")

	// init packages
	cfg := config.Configured()
	p := planner.Configured(cfg)

	// parse flags
	lflag.Configure()

	var level slog.Level
	// lflag automatically sets llog's level, but we need to set the slog level
	switch llog.GetLevel() {
	case llog.DebugLevel:
		level = slog.LevelDebug
	case llog.InfoLevel:
		level = slog.LevelInfo
	case llog.WarnLevel:
		level = slog.LevelWarn
	case llog.ErrorLevel:
		level = slog.LevelError
	default:
		panic(fmt.Errorf("unknown log level: %s", llog.GetLevel().String()))
	}
	log.SetDefaultLogLevel(level)
	if err := log.Configure(os.Stderr, *logFormat); err != nil {
		panic(err)
	}
	slog.Debug("logger configured", slog.String("level", level.String()))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	plan, err := p.Run(ctx)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "sizing failed", "error", err)
		os.Exit(1)
	}

	if err := report.WriteText(os.Stdout, plan); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to write report", "error", err)
		os.Exit(1)
	}

	if cfg.XLSXOut != "" {
		if err := writeXLSX(cfg.XLSXOut, plan); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to write workbook", "error", err, slog.String("path", cfg.XLSXOut))
			os.Exit(1)
		}
		log.Ctx(ctx).InfoContext(ctx, "wrote workbook", slog.String("path", cfg.XLSXOut))
	}
}

func writeXLSX(path string, plan planner.Plan) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteXLSX(f, plan); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
