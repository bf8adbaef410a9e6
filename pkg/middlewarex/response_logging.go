package middlewarex

import (
	"bytes"
	"cmp"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/zenazn/goji/web/mutil"

	"epic_notifier/pkg/logx"
)

const eventStreamBody = "[event-stream]"

// cappedBuffer keeps the first limit bytes written to it and discards the
// rest. A zero limit keeps everything.
type cappedBuffer struct {
	bytes.Buffer
	limit int
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if b.limit > 0 {
		room := b.limit - b.Len()
		if room <= 0 {
			return len(p), nil
		}

		if len(p) > room {
			b.Buffer.Write(p[:room])

			return len(p), nil
		}
	}

	return b.Buffer.Write(p)
}

// ResponseLogging logs status, headers and the leading part of the body once
// the handler returns. Server-sent event streams are logged without a body.
//
// mutil.WrapWriter keeps http.Flusher available to SSE handlers:
// https://blog.merovius.de/posts/2017-07-30-the-trouble-with-optional-interfaces/
func ResponseLogging(
	sensitiveDataMasker logx.SensitiveDataMaskerInterface,
	logFieldMaxLen int,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			start := time.Now()
			lw := mutil.WrapWriter(w)
			buf := &cappedBuffer{limit: logFieldMaxLen}

			lw.Tee(buf)

			next.ServeHTTP(lw, r)

			responseHeaders, err := responseHeaders(w)
			if err != nil {
				logger(ctx).Error("responseHeaders", logx.Error(err))
			}

			body := buf.Bytes()
			if strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream") {
				body = []byte(eventStreamBody)
			}

			// lw.Status() is 0 when the handler never called WriteHeader.
			status := cmp.Or(lw.Status(), http.StatusOK)

			logger(ctx).Info(
				logx.FieldHTTPResponse,
				slog.Int(logx.FieldResponseStatus, status),
				slog.String(logx.FieldResponseHeaders, string(sensitiveDataMasker.Mask(responseHeaders))),
				slog.String(logx.FieldResponseBody, string(sensitiveDataMasker.Mask(body))),
				slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
			)
		})
	}
}

func responseHeaders(w http.ResponseWriter) ([]byte, error) {
	var buf bytes.Buffer

	if err := w.Header().WriteSubset(&buf, map[string]bool{"Set-Cookie": true}); err != nil {
		return nil, fmt.Errorf("header.WriteSubset: %w", err)
	}

	return buf.Bytes(), nil
}
