package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"epic_notifier/internal/domain/service/pipeline"
	"epic_notifier/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	QueueNotifier = "notifier"
	TypeRun       = "notifier:run"

	runTaskTimeout = 30 * time.Minute
)

type RunPayload struct {
	Kind pipeline.Kind `json:"kind"`
}

// RunExecutor executes one pipeline run.
type RunExecutor interface {
	Execute(ctx context.Context, kind pipeline.Kind, extra ...pipeline.Observer) (*pipeline.Summary, error)
}

func NewRunTask(kind pipeline.Kind) (*asynq.Task, error) {
	payload, err := json.Marshal(RunPayload{Kind: kind})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(
		TypeRun,
		payload,
		asynq.Queue(QueueNotifier),
		asynq.MaxRetry(0),
		asynq.Timeout(runTaskTimeout),
	), nil
}

// RunTaskHandler executes the run named by the task payload. A failed run is
// reported through its events, so only malformed tasks return an error.
func RunTaskHandler(runner RunExecutor) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var p RunPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("json.Unmarshal: %w: %w", err, asynq.SkipRetry)
		}

		summary, err := runner.Execute(ctx, p.Kind)
		if err != nil {
			return fmt.Errorf("runner.Execute: %w: %w", err, asynq.SkipRetry)
		}

		logger(ctx).Info(
			"run task done",
			slog.String(logx.FieldRunKind, string(p.Kind)),
			slog.String("status", string(summary.Status())),
		)

		return nil
	}
}

// RunJob adapts a runner to the interval scheduler.
func RunJob(runner RunExecutor, kind pipeline.Kind) Job {
	return func(ctx context.Context) {
		if _, err := runner.Execute(ctx, kind); err != nil {
			logger(ctx).Error("scheduled run failed", logx.Error(err))
		}
	}
}
