package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"epic_notifier/pkg/contextx"
	"epic_notifier/pkg/logx"
)

// ObserverFactory builds a fresh observer for one run.
type ObserverFactory func(kind Kind) Observer

// Runner executes runs with the observers every run gets, plus any
// caller-supplied ones.
type Runner struct {
	orchestrator *Orchestrator
	observers    []Observer
	factories    []ObserverFactory
}

func NewRunner(orchestrator *Orchestrator) *Runner {
	return &Runner{orchestrator: orchestrator}
}

func (r *Runner) WithObservers(observers ...Observer) *Runner {
	r.observers = append(r.observers, observers...)

	return r
}

func (r *Runner) WithObserverFactories(factories ...ObserverFactory) *Runner {
	r.factories = append(r.factories, factories...)

	return r
}

// Execute streams one run of kind to every observer and returns its summary.
func (r *Runner) Execute(ctx context.Context, kind Kind, extra ...Observer) (*Summary, error) {
	run, err := r.orchestrator.Run(kind)
	if err != nil {
		return nil, fmt.Errorf("orchestrator.Run: %w", err)
	}

	runID := xid.New().String()
	ctx = contextx.WithLogger(ctx, logger(ctx).With(
		slog.String(logx.FieldRunID, runID),
		slog.String(logx.FieldRunKind, string(kind)),
	))

	summary := NewSummary()

	observers := make([]Observer, 0, len(r.observers)+len(r.factories)+len(extra)+1)
	observers = append(observers, summary)
	observers = append(observers, r.observers...)

	for _, f := range r.factories {
		observers = append(observers, f(kind))
	}

	observers = append(observers, extra...)

	started := time.Now()

	logger(ctx).Info("run started")

	Stream(ctx, run, observers...)

	logger(ctx).Info(
		"run finished",
		slog.String("status", string(summary.Status())),
		slog.Int(logx.FieldCount, len(summary.Found())),
		slog.Int64(logx.FieldDurationMs, time.Since(started).Milliseconds()),
	)

	return summary, nil
}
