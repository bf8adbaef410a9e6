package middlewarex

import (
	"log/slog"
	"net/http"

	"epic_notifier/pkg/contextx"
	"epic_notifier/pkg/logx"
)

// Logger attaches a request scoped logger carrying the trace id.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		traceID, err := contextx.TraceIDFromContext(ctx)
		if err != nil {
			logger(ctx).Warn("request without trace id", logx.Error(err))
		}

		ctx = contextx.WithLogger(
			ctx,
			logger(ctx).With(
				logx.Stringer(logx.FieldTraceID, traceID),
				slog.String(logx.FieldURL, r.URL.Path),
				slog.String(logx.FieldHTTPMethod, r.Method),
				slog.String(logx.FieldIP, clientIP(r)),
			),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
