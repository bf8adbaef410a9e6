package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"epic_notifier/internal/config"
	"epic_notifier/internal/domain/service/pipeline"
	"epic_notifier/internal/infrastructure/notifier"
	"epic_notifier/internal/server"
	"epic_notifier/internal/transport/bot"
	"epic_notifier/internal/transport/bot/handler"
	"epic_notifier/internal/worker"
	"epic_notifier/pkg/application/modules"
	"epic_notifier/pkg/logx"
	"epic_notifier/pkg/probe"
)

// Run serves the panel, the scheduler and the optional admin bot until ctx
// is done.
func Run(ctx context.Context, cfg config.Config) error {
	p, err := NewPipeline(ctx, cfg, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer p.Close(ctx)

	g, ctx := errgroup.WithContext(ctx)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.App.ProbeAddr,
		Checks: []probe.Check{
			{Name: "storage", Probe: p.Repo.Ping},
		},
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.App.MetricsAddr,
		Gatherer:      prometheus.DefaultGatherer,
	}.Run(ctx, g)

	scheduler, err := runScheduler(ctx, g, cfg, p.Runner)
	if err != nil {
		return err
	}

	if cfg.Bot.Enabled() {
		if err := runBot(ctx, g, cfg, p, scheduler); err != nil {
			return err
		}
	}

	httpServer, err := newHTTPServer(ctx, cfg, p)
	if err != nil {
		return err
	}

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func newHTTPServer(ctx context.Context, cfg config.Config, p *Pipeline) (*http.Server, error) {
	auth, err := server.NewAuth(cfg.Admin)
	if err != nil {
		return nil, fmt.Errorf("server.NewAuth: %w", err)
	}

	srv, err := server.NewServer(
		server.NewAdminServer(p.Repo, p.Runner, cfg.Storage.Mode),
		server.NewPublicServer(p.Repo),
		auth,
	).WithPublicRateLimit(cfg.HTTP.PublicRateLimit)
	if err != nil {
		return nil, fmt.Errorf("server.WithPublicRateLimit: %w", err)
	}

	return &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddr,
		Handler:           srv.Handler(logx.NewSensitiveDataMasker(), cfg.HTTP.LogFieldMaxLen),
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}, nil
}

// runScheduler starts the configured scheduler. The interval scheduler is
// returned so the bot can report its state.
func runScheduler(
	ctx context.Context,
	g *errgroup.Group,
	cfg config.Config,
	runner *pipeline.Runner,
) (*worker.Scheduler, error) {
	switch cfg.Scheduler.Mode {
	case config.SchedulerInterval:
		scheduler := worker.NewScheduler(worker.RunJob(runner, pipeline.KindScheduled), cfg.Scheduler.Interval)

		g.Go(func() error {
			return scheduler.Run(ctx)
		})

		return scheduler, nil

	case config.SchedulerAsynq:
		location, err := cfg.Scheduler.Location()
		if err != nil {
			return nil, fmt.Errorf("cfg.Scheduler.Location: %w", err)
		}

		task, err := worker.NewRunTask(pipeline.KindScheduled)
		if err != nil {
			return nil, fmt.Errorf("worker.NewRunTask: %w", err)
		}

		asynqServer := modules.AsynqServer{
			RedisUsername: cfg.Redis.Username,
			RedisPassword: cfg.Redis.Password,
			RedisAddress:  cfg.Redis.Address,
			RedisDB:       cfg.Redis.DB,
			Concurrency:   1,
		}

		asynqServer.Run(ctx, g, modules.AsynqQueues{worker.QueueNotifier: 1}, modules.AsynqHandler{
			Pattern: worker.TypeRun,
			Handle:  worker.RunTaskHandler(runner),
		})
		asynqServer.RunScheduler(ctx, g, location, modules.AsynqPeriodicTask{
			Cronspec: cfg.Scheduler.Cron,
			Task:     task,
		})

		return nil, nil

	default:
		logger(ctx).Info("scheduler disabled")

		return nil, nil
	}
}

func runBot(
	ctx context.Context,
	g *errgroup.Group,
	cfg config.Config,
	p *Pipeline,
	scheduler *worker.Scheduler,
) error {
	h := handler.New(p.Runner, p.Repo)
	if scheduler != nil {
		h.WithScheduler(scheduler)
	}

	b, err := bot.New(cfg.Bot, h)
	if err != nil {
		return fmt.Errorf("bot.New: %w", err)
	}

	if cfg.Bot.ChatID != 0 {
		alert := notifier.NewTelegramAlert(b.API(), cfg.Bot.ChatID)
		p.Runner.WithObserverFactories(alert.ForRun)

		logger(ctx).Info("telegram run alerts enabled", slog.Int64("chat-id", cfg.Bot.ChatID))
	}

	g.Go(func() error {
		return b.Run(ctx)
	})

	return nil
}
