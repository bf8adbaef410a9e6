package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// eventStream writes run events as server-sent events. Once the client is
// gone every write is dropped and the run carries on.
type eventStream struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	gone    bool
}

func newEventStream(w http.ResponseWriter) *eventStream {
	flusher, _ := w.(http.Flusher)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	s := &eventStream{w: w, flusher: flusher}
	s.flush()

	return s
}

func (s *eventStream) Observe(ctx context.Context, ev entity.Event) {
	s.send(ctx, ev)
}

func (s *eventStream) send(ctx context.Context, ev entity.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gone {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		logger(ctx).Error("json.Marshal", logx.Error(err))

		return
	}

	if _, err = fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		logger(ctx).Warn("stream client disconnected", logx.Error(err))
		s.gone = true

		return
	}

	s.flush()
}

// close writes the terminating complete event.
func (s *eventStream) close(ctx context.Context) {
	s.send(ctx, entity.CompleteEvent())
}

func (s *eventStream) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
