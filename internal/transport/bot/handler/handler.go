package handler

import (
	"context"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/internal/domain/service/pipeline"
)

type RunExecutor interface {
	Execute(ctx context.Context, kind pipeline.Kind, extra ...pipeline.Observer) (*pipeline.Summary, error)
}

type Repository interface {
	ReadSettings(ctx context.Context) (entity.Settings, error)
	ReadGamesHistory(ctx context.Context) ([]entity.HistoryGame, error)
	Stats(ctx context.Context) entity.Stats
}

type SchedulerStatus interface {
	IsRunning() bool
}

type Handler struct {
	runner    RunExecutor
	repo      Repository
	scheduler SchedulerStatus
}

func New(runner RunExecutor, repo Repository) *Handler {
	return &Handler{
		runner: runner,
		repo:   repo,
	}
}

// WithScheduler reports the interval scheduler state in /status.
func (h *Handler) WithScheduler(s SchedulerStatus) *Handler {
	h.scheduler = s

	return h
}
