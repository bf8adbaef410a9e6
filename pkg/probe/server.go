package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"epic_notifier/pkg/contextx"
	"epic_notifier/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	httpServerReadHeaderTimeout = 5 * time.Second
	checkTimeout                = 3 * time.Second
	statusOK                    = "ok"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Check reports whether a dependency is usable. A nil error means ready.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

type Options struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type readiness struct {
	Options
	Checks map[string]string `json:"checks,omitempty"`
}

// Server answers liveness on /healthz and readiness on /ready. Readiness
// fails while any check fails.
type Server struct {
	listenAddress string
	options       Options
	checks        []Check
}

func NewServer(
	listenAddress string,
	options Options,
	checks ...Check,
) Server {
	return Server{
		listenAddress: listenAddress,
		options:       options,
		checks:        checks,
	}
}

func (s Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handlerHealthz)
	mux.HandleFunc("/ready", s.handlerReady)

	return mux
}

func (s Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              s.listenAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger(ctx).Error("httpServer.Shutdown", logx.Error(err))
		}
	}()

	logger(ctx).Info(
		"probe server started",
		slog.String("address", s.listenAddress),
		slog.Int(logx.FieldCount, len(s.checks)),
	)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	logger(ctx).Info("probe server stopped")

	return nil
}

func (s Server) handlerHealthz(w http.ResponseWriter, r *http.Request) {
	s.write(r.Context(), w, http.StatusOK, readiness{Options: s.options})
}

func (s Server) handlerReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	status := http.StatusOK
	body := readiness{Options: s.options, Checks: make(map[string]string, len(s.checks))}

	for _, c := range s.checks {
		if err := c.Probe(ctx); err != nil {
			logger(ctx).Warn("readiness check failed", slog.String("check", c.Name), logx.Error(err))

			body.Checks[c.Name] = err.Error()
			status = http.StatusServiceUnavailable

			continue
		}

		body.Checks[c.Name] = statusOK
	}

	s.write(ctx, w, status, body)
}

func (s Server) write(ctx context.Context, w http.ResponseWriter, status int, body readiness) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}
