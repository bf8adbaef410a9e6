package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"epic_notifier/internal/application"
	"epic_notifier/internal/config"
	"epic_notifier/pkg/contextx"
	"epic_notifier/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log := logx.NewLogger(os.Stdout, cfg.App.LogFormat, cfg.App.LogLevel).
		With(slog.String("app", cfg.App.Name), slog.String("version", cfg.App.Version))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err := application.Run(ctx, cfg); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1) //nolint:gocritic
	}

	log.Info("application stopped")
}
