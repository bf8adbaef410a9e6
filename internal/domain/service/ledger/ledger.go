package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/internal/domain/value"
	"epic_notifier/pkg/logx"
)

const DefaultRetentionDays = 30

type Store interface {
	LoadLedger(ctx context.Context) ([]string, error)
	SaveLedger(ctx context.Context, keys []string) error
}

// Ledger remembers which offers were already notified. Keys expire
// DefaultRetentionDays after the offer's own end date. Writes are
// read-modify-write without locking, so concurrent runs resolve last writer
// wins.
type Ledger struct {
	store         Store
	now           func() time.Time
	retentionDays int
}

func New(store Store) *Ledger {
	return &Ledger{
		store:         store,
		now:           time.Now,
		retentionDays: DefaultRetentionDays,
	}
}

func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now

	return l
}

func (l *Ledger) WithRetentionDays(days int) *Ledger {
	l.retentionDays = days

	return l
}

// FilterNew drops offers whose key is already recorded. With commit set and
// at least one new key, the pruned ledger plus the new keys is persisted.
// When the ledger cannot be loaded the input is returned unfiltered together
// with the error.
func (l *Ledger) FilterNew(ctx context.Context, offers []entity.GameOffer, commit bool) ([]entity.GameOffer, error) {
	stored, err := l.store.LoadLedger(ctx)
	if err != nil {
		return offers, fmt.Errorf("store.LoadLedger: %w", err)
	}

	keys := Prune(stored, l.now(), l.retentionDays)

	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		seen[k] = struct{}{}
	}

	var (
		fresh   []entity.GameOffer
		newKeys []string
	)

	for _, offer := range offers {
		key := offer.Key().String()
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}

		fresh = append(fresh, offer)
		newKeys = append(newKeys, key)
	}

	if commit && len(newKeys) > 0 {
		if err = l.store.SaveLedger(ctx, append(keys, newKeys...)); err != nil {
			return fresh, fmt.Errorf("store.SaveLedger: %w", err)
		}

		logger(ctx).Info(
			"ledger updated",
			slog.Int(logx.FieldCount, len(newKeys)),
			slog.Int("pruned", len(stored)-len(keys)),
		)
	}

	return fresh, nil
}

// Prune drops keys whose embedded end date lies more than retentionDays in
// the past. Keys that cannot be parsed are kept.
func Prune(keys []string, now time.Time, retentionDays int) []string {
	return lo.Reject(keys, func(k string, _ int) bool {
		return value.NotificationKey(k).Expired(now, retentionDays)
	})
}
