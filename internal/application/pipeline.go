package application

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"epic_notifier/internal/config"
	"epic_notifier/internal/domain/service/ledger"
	"epic_notifier/internal/domain/service/pipeline"
	"epic_notifier/internal/infrastructure/epicstore"
	"epic_notifier/internal/infrastructure/mailer"
	"epic_notifier/internal/infrastructure/monitoring"
	"epic_notifier/internal/infrastructure/persistence"
	"epic_notifier/pkg/httpx"
	"epic_notifier/pkg/logx"
)

// Pipeline is everything needed to execute runs against the configured
// storage.
type Pipeline struct {
	Repo    *persistence.Repository
	Runner  *pipeline.Runner
	Metrics *monitoring.Metrics

	close func(context.Context)
}

func (p *Pipeline) Close(ctx context.Context) {
	p.close(ctx)
}

func NewPipeline(ctx context.Context, cfg config.Config, reg prometheus.Registerer) (*Pipeline, error) {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	metrics, err := monitoring.NewMetrics(reg)
	if err != nil {
		closeStore(ctx)

		return nil, fmt.Errorf("monitoring.NewMetrics: %w", err)
	}

	repo := persistence.NewRepository(store)

	orchestrator := pipeline.NewOrchestrator(
		repo,
		newEpicClient(cfg.Epic),
		ledger.New(repo),
		metrics.InstrumentDispatcher(mailer.NewSMTP(cfg.SMTP)),
	).
		WithConfigCheck(cfg.SMTP.Validate).
		WithFallbackRecipient(cfg.SMTP.ToEmail)

	runner := pipeline.NewRunner(orchestrator).
		WithObservers(pipeline.NewHistoryRecorder(repo)).
		WithObserverFactories(metrics.ForRun)

	return &Pipeline{
		Repo:    repo,
		Runner:  runner,
		Metrics: metrics,
		close:   closeStore,
	}, nil
}

func newEpicClient(cfg config.Epic) *epicstore.Client {
	transport := httpx.NewHeaderRoundTripper(
		httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(cfg.LogFieldMaxLen),
			httpx.WithResponseBody(cfg.LogResponseBody),
		),
		http.Header{"User-Agent": []string{cfg.UserAgent}},
	)

	checker := epicstore.NewURLChecker(
		epicstore.NewCheckHTTPClient(
			httpx.NewHeaderRoundTripper(http.DefaultTransport, http.Header{"User-Agent": []string{cfg.UserAgent}}),
			cfg.CheckTimeout,
		),
	).
		WithCacheTTL(cfg.CheckCacheTTL).
		WithRate(cfg.CheckRatePerSec)

	return epicstore.NewClient(
		&http.Client{Transport: transport, Timeout: cfg.RequestTimeout},
		checker,
	).
		WithPromotionsURL(cfg.PromotionsURL).
		WithGraphQLURL(cfg.GraphQLURL).
		WithStoreURL(cfg.StoreURL).
		WithLocale(cfg.Locale, cfg.Country).
		WithSearchCount(cfg.SearchCount)
}
