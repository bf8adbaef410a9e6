package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"epic_notifier/pkg/httpx/reply"
	"epic_notifier/pkg/logx"
	"epic_notifier/pkg/middlewarex"
)

// Handler builds the panel router with the request middleware chain.
func (s Server) Handler(sensitiveDataMasker logx.SensitiveDataMaskerInterface, logFieldMaxLen int) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(sensitiveDataMasker, logFieldMaxLen),
		middlewarex.ResponseLogging(sensitiveDataMasker, logFieldMaxLen),
	)

	s.RegisterRoutes(r)

	return r
}

func (s Server) RegisterRoutes(r chi.Router) {
	r.Post("/login", handler(s.auth.postLogin))
	r.Post("/logout", handler(s.auth.postLogout))

	r.Route("/api", func(r chi.Router) {
		// public zone, visitors are told apart by fingerprint
		r.Group(func(r chi.Router) {
			r.Use(middlewarex.Fingerprint)

			r.Get("/me", handler(s.getMe))
			r.Get("/public", handler(s.getPublic))
			r.Get("/games_history", handler(s.getGamesHistory))

			r.With(s.publicLimiter).Post("/register_email", handler(s.postRegisterEmail))
			r.With(s.publicLimiter).Post("/unregister_email", handler(s.postUnregisterEmail))
		})

		// admin zone
		r.Group(func(r chi.Router) {
			r.Use(s.auth.RequireAdmin)

			r.Get("/settings", handler(s.getSettings))
			r.Post("/settings", handler(s.postSettings))
			r.Get("/db_stats", handler(s.getDBStats))
			r.Get("/stream_run", handler(s.getStreamRun))
			r.Get("/stream_search", handler(s.getStreamSearch))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
