package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/pkg/logx"
)

type HistoryStore interface {
	AddGameToHistory(ctx context.Context, game entity.HistoryGame) error
}

// HistoryRecorder appends every found offer to the games timeline.
type HistoryRecorder struct {
	store HistoryStore
	now   func() time.Time
}

func NewHistoryRecorder(store HistoryStore) *HistoryRecorder {
	return &HistoryRecorder{
		store: store,
		now:   time.Now,
	}
}

func (h *HistoryRecorder) Observe(ctx context.Context, ev entity.Event) {
	if ev.Type != entity.EventFound || ev.Game == nil {
		return
	}

	if err := h.store.AddGameToHistory(ctx, entity.NewHistoryGame(*ev.Game, h.now().UTC())); err != nil {
		logger(ctx).Error(
			"failed to record found game",
			slog.String(logx.FieldTitle, ev.Game.Title),
			logx.Error(err),
		)
	}
}

// Summary accumulates the outcome of one run.
type Summary struct {
	mu     sync.Mutex
	found  []entity.GameOffer
	status entity.RunStatus
	errors []string
	last   string
}

func NewSummary() *Summary {
	return &Summary{}
}

func (s *Summary) Observe(_ context.Context, ev entity.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case entity.EventFound:
		if ev.Game != nil {
			s.found = append(s.found, *ev.Game)
		}
	case entity.EventStatus:
		s.status = ev.Status
	case entity.EventError:
		s.errors = append(s.errors, ev.Message)
	case entity.EventLog:
		s.last = ev.Message
	case entity.EventProgress, entity.EventComplete:
	}
}

func (s *Summary) Found() []entity.GameOffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]entity.GameOffer(nil), s.found...)
}

func (s *Summary) Status() entity.RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

func (s *Summary) Errors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.errors...)
}

// LastMessage is the final log line of the run.
func (s *Summary) LastMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.last
}

func (s *Summary) Succeeded() bool {
	return s.Status() == entity.StatusSuccess
}
