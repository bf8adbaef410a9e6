package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"epic_notifier/internal/application"
	"epic_notifier/internal/config"
	"epic_notifier/internal/domain/entity"
	"epic_notifier/pkg/contextx"
	"epic_notifier/pkg/logx"
)

func main() {
	force := flag.Bool("force", false, "notify current offers even if already sent")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log := logx.NewLogger(os.Stdout, cfg.App.LogFormat, cfg.App.LogLevel)
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	status, err := application.RunOnce(ctx, cfg, *force)
	if err != nil {
		log.Error("run failed", logx.Error(err))
		os.Exit(1) //nolint:gocritic
	}

	if status != entity.StatusSuccess {
		os.Exit(1) //nolint:gocritic
	}
}
