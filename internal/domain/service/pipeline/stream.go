package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/pkg/logx"
)

const eventBuffer = 64

type Observer interface {
	Observe(ctx context.Context, ev entity.Event)
}

type ObserverFunc func(ctx context.Context, ev entity.Event)

func (f ObserverFunc) Observe(ctx context.Context, ev entity.Event) {
	f(ctx, ev)
}

// Stream runs run on its own goroutine and delivers every event, in order,
// to each observer. Log events are also written to the context logger.
// Stream returns once the run has finished and all events were delivered.
func Stream(ctx context.Context, run Run, observers ...Observer) {
	events := make(chan entity.Event, eventBuffer)

	go func() {
		defer close(events)
		defer func() {
			if rec := recover(); rec != nil {
				logger(ctx).Error(
					"panic in run",
					slog.Any(logx.FieldError, rec),
					slog.String(logx.FieldStack, string(debug.Stack())),
				)
				events <- entity.ErrorEvent(fmt.Sprintf("%v", rec))
				events <- entity.StatusEvent(entity.StatusError)
			}
		}()

		run(ctx, events)
	}()

	for ev := range events {
		mirror(ctx, ev)

		for _, o := range observers {
			o.Observe(ctx, ev)
		}
	}
}

func mirror(ctx context.Context, ev entity.Event) {
	if ev.Type != entity.EventLog {
		return
	}

	switch ev.Level {
	case entity.LevelError:
		logger(ctx).Error(ev.Message)
	case entity.LevelWarning:
		logger(ctx).Warn(ev.Message)
	default:
		logger(ctx).Info(ev.Message)
	}
}
