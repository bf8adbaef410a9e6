package server

import (
	"fmt"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"epic_notifier/pkg/errcodes"
	"epic_notifier/pkg/httpx/reply"
	"epic_notifier/pkg/rest"
)

// Server joins the admin and public HTTP servers behind one router.
type Server struct {
	AdminServer
	PublicServer

	auth          *Auth
	publicLimiter func(next http.Handler) http.Handler
}

func NewServer(
	adminServer AdminServer,
	publicServer PublicServer,
	auth *Auth,
) Server {
	return Server{
		AdminServer:   adminServer,
		PublicServer:  publicServer,
		auth:          auth,
		publicLimiter: func(next http.Handler) http.Handler { return next },
	}
}

// WithPublicRateLimit bounds anonymous write endpoints per client IP, using
// a limiter rate such as "30-M".
func (s Server) WithPublicRateLimit(formatted string) (Server, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return s, fmt.Errorf("limiter.NewRateFromFormatted: %w", err)
	}

	s.publicLimiter = stdlib.NewMiddleware(
		limiter.New(memory.NewStore(), rate),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			reply.JSON(r.Context(), w, http.StatusTooManyRequests, rest.Error{
				Code:    rest.ErrorCode(errcodes.TooManyRequests),
				Message: "Too many requests, try again later",
			})
		}),
	).Handler

	return s, nil
}
