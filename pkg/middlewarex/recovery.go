package middlewarex

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"git.appkode.ru/pub/go/failure"

	"epic_notifier/pkg/errcodes"
	"epic_notifier/pkg/httpx/reply"
	"epic_notifier/pkg/logx"
)

// Recovery turns a handler panic into a JSON 500 response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler { //nolint:errorlint,err113
				panic(rec)
			}

			logger(ctx).Error(
				"panic in handler",
				slog.Any(logx.FieldError, rec),
				slog.String(logx.FieldStack, string(debug.Stack())),
			)

			reply.Error(ctx, w, failure.NewInternalServerError(
				fmt.Sprintf("panic: %v", rec),
				failure.WithCode(errcodes.InternalServerError),
				failure.WithDescription("Internal server error"),
			))
		}()

		next.ServeHTTP(w, r)
	})
}
