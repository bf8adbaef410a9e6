package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/pkg/logx"
)

type Kind string

const (
	KindScheduled Kind = "scheduled"
	KindForced    Kind = "forced"
	KindSearch    Kind = "search"
)

// Run executes one pipeline run, publishing its events. A Run never closes
// the channel and never panics out.
type Run func(ctx context.Context, events chan<- entity.Event)

type SettingsReader interface {
	ReadSettings(ctx context.Context) (entity.Settings, error)
}

type Fetcher interface {
	FetchWeeklyFree(ctx context.Context, cfg entity.FilterConfig) []entity.GameOffer
	SearchCheap(ctx context.Context, cfg entity.FilterConfig, events chan<- entity.Event) []entity.GameOffer
}

type Ledger interface {
	FilterNew(ctx context.Context, offers []entity.GameOffer, commit bool) ([]entity.GameOffer, error)
}

type Dispatcher interface {
	Send(ctx context.Context, recipients []string, offers []entity.GameOffer) bool
}

type Orchestrator struct {
	settings          SettingsReader
	fetcher           Fetcher
	ledger            Ledger
	dispatcher        Dispatcher
	checkConfig       func() error
	fallbackRecipient string
}

func NewOrchestrator(
	settings SettingsReader,
	fetcher Fetcher,
	ledger Ledger,
	dispatcher Dispatcher,
) *Orchestrator {
	return &Orchestrator{
		settings:    settings,
		fetcher:     fetcher,
		ledger:      ledger,
		dispatcher:  dispatcher,
		checkConfig: func() error { return nil },
	}
}

// WithConfigCheck sets the transport configuration check performed before
// any network call of a dispatching run.
func (o *Orchestrator) WithConfigCheck(check func() error) *Orchestrator {
	o.checkConfig = check

	return o
}

func (o *Orchestrator) WithFallbackRecipient(email string) *Orchestrator {
	o.fallbackRecipient = email

	return o
}

func (o *Orchestrator) Run(kind Kind) (Run, error) {
	switch kind {
	case KindScheduled:
		return o.RunScheduled, nil
	case KindForced:
		return o.RunForced, nil
	case KindSearch:
		return o.RunSearch, nil
	default:
		return nil, fmt.Errorf("unknown run kind %q", kind)
	}
}

// RunScheduled notifies only offers missing from the ledger and commits them
// after a successful dispatch. A failed dispatch leaves the ledger untouched
// so the same offers are retried next run.
func (o *Orchestrator) RunScheduled(ctx context.Context, events chan<- entity.Event) {
	defer o.recoverRun(ctx, events)

	if !o.configOK(ctx, events) {
		return
	}

	settings := o.loadSettings(ctx)
	cfg := settings.FilterConfig()

	emit(ctx, events, entity.LogEvent(entity.LevelInfo, "Starting scraper process..."))
	emit(ctx, events, entity.LogEvent(entity.LevelInfo, "Fetching weekly free games..."))

	offers := o.fetchWeekly(ctx, cfg, events)
	if len(offers) == 0 {
		emit(ctx, events, entity.LogEvent(entity.LevelInfo, "No interesting games found this run."))
		emit(ctx, events, entity.StatusEvent(entity.StatusSuccess))

		return
	}

	fresh, err := o.ledger.FilterNew(ctx, offers, false)
	if err != nil {
		logger(ctx).Warn("ledger unavailable, treating all offers as new", logx.Error(err))
	}

	if len(fresh) == 0 {
		emit(ctx, events, entity.LogEvent(entity.LevelInfo, "No new games (all already notified)."))
		emit(ctx, events, entity.StatusEvent(entity.StatusSuccess))

		return
	}

	emit(ctx, events, entity.LogEvent(
		entity.LevelSuccess,
		fmt.Sprintf("Found %d new games to notify! Sending email...", len(fresh)),
	))

	if !o.dispatcher.Send(ctx, settings.Recipients(o.fallbackRecipient), fresh) {
		emit(ctx, events, entity.LogEvent(entity.LevelWarning, "Email failed to send."))
		emit(ctx, events, entity.StatusEvent(entity.StatusError))

		return
	}

	if o.commit(ctx, events, fresh) {
		emit(ctx, events, entity.LogEvent(entity.LevelSuccess, "Email sent and history updated."))
	}

	emit(ctx, events, entity.StatusEvent(entity.StatusSuccess))
}

// RunForced bypasses the ledger check but uses the same weekly source, and
// records every dispatched offer afterwards.
func (o *Orchestrator) RunForced(ctx context.Context, events chan<- entity.Event) {
	defer o.recoverRun(ctx, events)

	if !o.configOK(ctx, events) {
		return
	}

	settings := o.loadSettings(ctx)
	cfg := settings.FilterConfig()

	emit(ctx, events, entity.LogEvent(entity.LevelInfo, "Force sending notifications..."))
	emit(ctx, events, entity.LogEvent(entity.LevelInfo, "Fetching current free games..."))

	offers := o.fetchWeekly(ctx, cfg, events)
	if len(offers) == 0 {
		emit(ctx, events, entity.LogEvent(entity.LevelWarning, "No free games available to notify about."))
		emit(ctx, events, entity.StatusEvent(entity.StatusSuccess))

		return
	}

	emit(ctx, events, entity.LogEvent(
		entity.LevelSuccess,
		fmt.Sprintf("Sending email for %d games...", len(offers)),
	))

	recipients := settings.Recipients(o.fallbackRecipient)

	if !o.dispatcher.Send(ctx, recipients, offers) {
		emit(ctx, events, entity.LogEvent(entity.LevelError, "Failed to send email. Check SMTP settings in .env file."))
		emit(ctx, events, entity.StatusEvent(entity.StatusError))

		return
	}

	o.commit(ctx, events, offers)

	emit(ctx, events, entity.LogEvent(
		entity.LevelSuccess,
		fmt.Sprintf("Email sent successfully to %d recipient(s)!", len(recipients)),
	))
	emit(ctx, events, entity.StatusEvent(entity.StatusSuccess))
}

// RunSearch streams a broad catalog search. Nothing is dispatched and the
// ledger is not read or written.
func (o *Orchestrator) RunSearch(ctx context.Context, events chan<- entity.Event) {
	defer o.recoverRun(ctx, events)

	cfg := o.loadSettings(ctx).FilterConfig()

	emit(ctx, events, entity.LogEvent(entity.LevelInfo, "Starting broad search..."))

	offers := o.fetcher.SearchCheap(ctx, cfg, events)

	emit(ctx, events, entity.LogEvent(
		entity.LevelSuccess,
		fmt.Sprintf("Broad search finished: %d games found.", len(offers)),
	))
	emit(ctx, events, entity.StatusEvent(entity.StatusSuccess))
}

func (o *Orchestrator) configOK(ctx context.Context, events chan<- entity.Event) bool {
	if err := o.checkConfig(); err != nil {
		fail(ctx, events, err)

		return false
	}

	return true
}

func (o *Orchestrator) loadSettings(ctx context.Context) entity.Settings {
	settings, err := o.settings.ReadSettings(ctx)
	if err != nil {
		logger(ctx).Error("failed to load settings, using defaults", logx.Error(err))

		return entity.DefaultSettings()
	}

	logger(ctx).Info(
		"loaded settings",
		slog.Int("threshold", int(settings.FilterConfig().Threshold)),
		slog.Int("emails", len(settings.Emails)),
		slog.Bool("deep-search", settings.DeepSearchFree),
	)

	return settings
}

func (o *Orchestrator) fetchWeekly(ctx context.Context, cfg entity.FilterConfig, events chan<- entity.Event) []entity.GameOffer {
	offers := o.fetcher.FetchWeeklyFree(ctx, cfg)

	for _, offer := range offers {
		emit(ctx, events, entity.FoundEvent(offer))
	}

	emit(ctx, events, entity.ProgressEvent(len(offers), len(offers)))

	return offers
}

// commit records dispatched offers. A failure is reported as a warning; the
// dispatch itself already succeeded.
func (o *Orchestrator) commit(ctx context.Context, events chan<- entity.Event, offers []entity.GameOffer) bool {
	if _, err := o.ledger.FilterNew(ctx, offers, true); err != nil {
		logger(ctx).Error("ledger commit failed", logx.Error(err))
		emit(ctx, events, entity.LogEvent(
			entity.LevelWarning,
			"Email sent, but notification history could not be updated. These games may be sent again.",
		))

		return false
	}

	return true
}

func (o *Orchestrator) recoverRun(ctx context.Context, events chan<- entity.Event) {
	rec := recover()
	if rec == nil {
		return
	}

	logger(ctx).Error(
		"panic in pipeline run",
		slog.Any(logx.FieldError, rec),
		slog.String(logx.FieldStack, string(debug.Stack())),
	)

	fail(ctx, events, fmt.Errorf("%v", rec))
}

func fail(ctx context.Context, events chan<- entity.Event, err error) {
	emit(ctx, events, entity.ErrorEvent(err.Error()))
	emit(ctx, events, entity.LogEvent(entity.LevelError, "FAILED: "+err.Error()))
	emit(ctx, events, entity.StatusEvent(entity.StatusError))
}

func emit(ctx context.Context, events chan<- entity.Event, ev entity.Event) {
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}
