package middlewarex_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"epic_notifier/pkg/contextx"
	"epic_notifier/pkg/logx"
	"epic_notifier/pkg/middlewarex"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "propagated", incoming: "abc-123_X", keep: true},
		{name: "missing", incoming: ""},
		{name: "invalid chars", incoming: "abc\n123"},
		{name: "too long", incoming: strings.Repeat("a", 65)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)

			var got contextx.TraceID

			h := middlewarex.TraceID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				var err error

				got, err = contextx.TraceIDFromContext(r.Context())
				rq.NoError(err)
			}))

			r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			if tt.incoming != "" {
				r.Header.Set("X-Trace-Id", tt.incoming)
			}

			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			rq.NotEmpty(got)
			rq.Equal(got.String(), w.Header().Get("X-Trace-Id"))

			if tt.keep {
				rq.Equal(tt.incoming, got.String())
			} else {
				rq.NotEqual(tt.incoming, got.String())
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	h := middlewarex.TraceID(middlewarex.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)

	rq.Equal(http.StatusInternalServerError, w.Code)
	rq.Contains(w.Body.String(), `"code":"InternalServerError"`)
	rq.Contains(w.Body.String(), `"supportId":"`+w.Header().Get("X-Trace-Id")+`"`)
}

func TestResponseLoggingSkipsEventStream(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	var logs bytes.Buffer

	ctx := contextx.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&logs, nil)))

	h := middlewarex.ResponseLogging(logx.NewNopSensitiveDataMasker(), 0)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			_, _ = w.Write([]byte("data: {\"type\":\"log\"}\n\n"))
		}),
	)

	r := httptest.NewRequest(http.MethodGet, "/api/stream_run", http.NoBody).WithContext(ctx)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)

	rq.Contains(w.Body.String(), `data: {"type":"log"}`)
	rq.Contains(logs.String(), `"response-body":"[event-stream]"`)
	rq.NotContains(logs.String(), `\"type\":\"log\"`)
}

func TestResponseLoggingCapsBody(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	var logs bytes.Buffer

	ctx := contextx.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&logs, nil)))

	h := middlewarex.ResponseLogging(logx.NewNopSensitiveDataMasker(), 5)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("0123456789"))
		}),
	)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody).WithContext(ctx))

	rq.Equal("0123456789", w.Body.String())
	rq.Contains(logs.String(), `"response-body":"01234"`)
	rq.Contains(logs.String(), `"response-status":200`)
}
