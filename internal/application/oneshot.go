package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"epic_notifier/internal/config"
	"epic_notifier/internal/domain/entity"
	"epic_notifier/internal/domain/service/pipeline"
)

// RunOnce executes a single scheduled or forced run and reports its status.
func RunOnce(ctx context.Context, cfg config.Config, force bool) (entity.RunStatus, error) {
	p, err := NewPipeline(ctx, cfg, prometheus.NewRegistry())
	if err != nil {
		return entity.StatusError, err
	}
	defer p.Close(ctx)

	kind := pipeline.KindScheduled
	if force {
		kind = pipeline.KindForced
	}

	summary, err := p.Runner.Execute(ctx, kind)
	if err != nil {
		return entity.StatusError, fmt.Errorf("runner.Execute: %w", err)
	}

	logger(ctx).Info(
		"one-shot run finished",
		slog.String("status", string(summary.Status())),
		slog.Int("found", len(summary.Found())),
		slog.String("last-message", summary.LastMessage()),
	)

	return summary.Status(), nil
}
