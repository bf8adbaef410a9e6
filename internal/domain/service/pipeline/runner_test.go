package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/internal/domain/service/pipeline"
)

func TestRunnerExecute(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	f := newFixture(game("Hades"))

	var shared, perRun, extra int

	var kinds []pipeline.Kind

	runner := pipeline.NewRunner(f.orch).
		WithObservers(pipeline.ObserverFunc(func(context.Context, entity.Event) { shared++ })).
		WithObserverFactories(func(kind pipeline.Kind) pipeline.Observer {
			kinds = append(kinds, kind)

			return pipeline.ObserverFunc(func(context.Context, entity.Event) { perRun++ })
		})

	summary, err := runner.Execute(
		context.Background(),
		pipeline.KindScheduled,
		pipeline.ObserverFunc(func(context.Context, entity.Event) { extra++ }),
	)
	rq.NoError(err)
	rq.True(summary.Succeeded())
	rq.Len(summary.Found(), 1)
	rq.Equal([]pipeline.Kind{pipeline.KindScheduled}, kinds)
	rq.Positive(shared)
	rq.Equal(shared, perRun)
	rq.Equal(shared, extra)
}

func TestRunnerUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := pipeline.NewRunner(newFixture().orch).Execute(context.Background(), pipeline.Kind("nope"))
	require.Error(t, err)
}
