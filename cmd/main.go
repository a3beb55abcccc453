package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"realty_extractor/internal/application"
	"realty_extractor/internal/config"
	"realty_extractor/pkg/contextx"
	"realty_extractor/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load", logx.Error(err))
		os.Exit(1)
	}

	log := newLogger(cfg.App)
	slog.SetDefault(log)
	ctx = contextx.WithLogger(ctx, log)

	if err := application.Run(ctx, log, cfg); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}

func newLogger(cfg config.App) *slog.Logger {
	if cfg.LogPretty {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      cfg.LogLevel,
			TimeFormat: time.Kitchen,
		}))
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})).With(
		slog.String(logx.FieldAppName, cfg.Name),
		slog.String(logx.FieldAppVersion, cfg.Version),
	)
}
