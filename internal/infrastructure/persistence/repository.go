package persistence

import (
	"context"
	"fmt"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"epic_notifier/internal/config"
	"epic_notifier/internal/domain"
	"epic_notifier/internal/domain/entity"
	"epic_notifier/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

type ledgerDocument struct {
	NotifiedGames []string `json:"notified_games"`
}

// Repository maps the notifier documents onto a DocumentStore. Missing
// documents read as their defaults. Read-modify-write operations are
// serialized within the process.
type Repository struct {
	store DocumentStore
	mu    sync.Mutex
	now   func() time.Time
}

func NewRepository(store DocumentStore) *Repository {
	return &Repository{
		store: store,
		now:   time.Now,
	}
}

func (r *Repository) WithClock(now func() time.Time) *Repository {
	r.now = now

	return r
}

func (r *Repository) Store() DocumentStore {
	return r.store
}

func (r *Repository) ReadSettings(ctx context.Context) (entity.Settings, error) {
	settings := entity.DefaultSettings()

	if _, err := r.read(ctx, DocSettings, &settings); err != nil {
		return entity.DefaultSettings(), err
	}

	if settings.Emails == nil {
		settings.Emails = []string{}
	}

	if settings.Categories == nil {
		settings.Categories = []string{}
	}

	return settings, nil
}

func (r *Repository) WriteSettings(ctx context.Context, settings entity.Settings) error {
	return r.write(ctx, DocSettings, settings)
}

func (r *Repository) ReadSubscribers(ctx context.Context) (entity.Subscribers, error) {
	subs := entity.Subscribers{}

	if _, err := r.read(ctx, DocUserEmails, &subs); err != nil {
		return entity.Subscribers{}, err
	}

	if subs == nil {
		subs = entity.Subscribers{}
	}

	return subs, nil
}

func (r *Repository) WriteSubscribers(ctx context.Context, subs entity.Subscribers) error {
	return r.write(ctx, DocUserEmails, subs)
}

// SubscriberEmail returns the email registered for fingerprint, or "".
func (r *Repository) SubscriberEmail(ctx context.Context, fingerprint string) (string, error) {
	subs, err := r.ReadSubscribers(ctx)
	if err != nil {
		return "", err
	}

	return subs[fingerprint], nil
}

// RegisterSubscriber binds email to fingerprint and adds it to the
// recipient list.
func (r *Repository) RegisterSubscriber(ctx context.Context, fingerprint, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, err := r.ReadSubscribers(ctx)
	if err != nil {
		return err
	}

	subs[fingerprint] = email

	if err = r.WriteSubscribers(ctx, subs); err != nil {
		return err
	}

	settings, err := r.ReadSettings(ctx)
	if err != nil {
		return err
	}

	if settings.AddEmail(email) {
		return r.WriteSettings(ctx, settings)
	}

	return nil
}

// UnregisterSubscriber removes the binding and its email from the recipient
// list. domain.ErrEmailNotRegistered is returned for unknown fingerprints.
func (r *Repository) UnregisterSubscriber(ctx context.Context, fingerprint string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, err := r.ReadSubscribers(ctx)
	if err != nil {
		return err
	}

	email, ok := subs[fingerprint]
	if !ok {
		return domain.ErrEmailNotRegistered
	}

	delete(subs, fingerprint)

	if err = r.WriteSubscribers(ctx, subs); err != nil {
		return err
	}

	settings, err := r.ReadSettings(ctx)
	if err != nil {
		return err
	}

	if settings.RemoveEmail(email) {
		return r.WriteSettings(ctx, settings)
	}

	return nil
}

// ReadGamesHistory returns the timeline, newest first.
func (r *Repository) ReadGamesHistory(ctx context.Context) ([]entity.HistoryGame, error) {
	var history []entity.HistoryGame

	if _, err := r.read(ctx, DocGamesHistory, &history); err != nil {
		return []entity.HistoryGame{}, err
	}

	if history == nil {
		history = []entity.HistoryGame{}
	}

	return history, nil
}

// AddGameToHistory prepends game unless a game with the same title is
// already recorded.
func (r *Repository) AddGameToHistory(ctx context.Context, game entity.HistoryGame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	history, err := r.ReadGamesHistory(ctx)
	if err != nil {
		return err
	}

	for _, g := range history {
		if g.Title == game.Title {
			return nil
		}
	}

	if game.FoundDate.IsZero() {
		game.FoundDate = r.now().UTC()
	}

	return r.write(ctx, DocGamesHistory, append([]entity.HistoryGame{game}, history...))
}

func (r *Repository) LoadLedger(ctx context.Context) ([]string, error) {
	var doc ledgerDocument

	if _, err := r.read(ctx, DocNotificationHistory, &doc); err != nil {
		return nil, err
	}

	if doc.NotifiedGames == nil {
		return []string{}, nil
	}

	return doc.NotifiedGames, nil
}

func (r *Repository) SaveLedger(ctx context.Context, keys []string) error {
	if keys == nil {
		keys = []string{}
	}

	return r.write(ctx, DocNotificationHistory, ledgerDocument{NotifiedGames: keys})
}

// Stats counts the stored documents and probes the document backend.
func (r *Repository) Stats(ctx context.Context) entity.Stats {
	stats := entity.Stats{
		Mode:    r.store.Name(),
		Backend: r.backend().Name(),
	}

	if stats.Backend != config.StorageFile {
		stats.BackendConnected = r.Ping(ctx) == nil
	}

	if found, err := r.read(ctx, DocSettings, &entity.Settings{}); err == nil && found {
		stats.SettingsCount = 1
	}

	if subs, err := r.ReadSubscribers(ctx); err == nil {
		stats.UserEmailsCount = len(subs)
	}

	if history, err := r.ReadGamesHistory(ctx); err == nil {
		stats.GamesCount = len(history)
	}

	if keys, err := r.LoadLedger(ctx); err == nil {
		stats.LedgerCount = len(keys)
	}

	return stats
}

// Ping reads the settings document from the backend, bypassing any file
// mirror. A missing document counts as reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if _, err := r.backend().Get(ctx, DocSettings); err != nil && !isNotFound(err) {
		return fmt.Errorf("%s: %w", r.backend().Name(), err)
	}

	return nil
}

func (r *Repository) backend() DocumentStore {
	if h, ok := r.store.(*HybridStore); ok {
		return h.Primary()
	}

	return r.store
}

// read decodes the named document into dst and reports whether it existed.
func (r *Repository) read(ctx context.Context, name string, dst any) (bool, error) {
	data, err := r.store.Get(ctx, name)
	if isNotFound(err) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("store.Get: %w", err)
	}

	if err = json.Unmarshal(data, dst); err != nil {
		return false, domain.WrapError(err, errcodes.StorageUnavailable, "decode "+name)
	}

	return true, nil
}

func (r *Repository) write(ctx context.Context, name string, src any) error {
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	if err = r.store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("store.Put: %w", err)
	}

	return nil
}
