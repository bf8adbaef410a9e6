package reply_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"epic_notifier/pkg/contextx"
	"epic_notifier/pkg/errcodes"
	"epic_notifier/pkg/httpx/reply"
)

func TestError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "validation with default code",
			err:    failure.NewInvalidArgumentError("bad", failure.WithDescription("currency is required")),
			status: http.StatusBadRequest,
			body:   `{"code":"ValidationError","message":"currency is required","supportId":"trace-1"}`,
		},
		{
			name: "not found with explicit code",
			err: failure.NewNotFoundError("missing",
				failure.WithCode(errcodes.EmailNotRegistered),
				failure.WithDescription("Email not registered"),
			),
			status: http.StatusNotFound,
			body:   `{"code":"EmailNotRegistered","message":"Email not registered","supportId":"trace-1"}`,
		},
		{
			name:   "unauthorized",
			err:    failure.NewUnauthorizedError("no session"),
			status: http.StatusUnauthorized,
			body:   `{"code":"Unauthorized","message":"","supportId":"trace-1"}`,
		},
		{
			name:   "timeout",
			err:    failure.NewTimeoutError("slow"),
			status: http.StatusGatewayTimeout,
			body:   `{"code":"TimeoutExceeded","message":"","supportId":"trace-1"}`,
		},
		{
			name:   "plain error",
			err:    errors.New("disk on fire"),
			status: http.StatusInternalServerError,
			body:   `{"code":"InternalServerError","message":"","supportId":"trace-1"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)

			ctx := contextx.WithTraceID(context.Background(), "trace-1")
			w := httptest.NewRecorder()

			reply.Error(ctx, w, tc.err)

			rq.Equal(tc.status, w.Code)
			rq.Equal("application/json; charset=utf-8", w.Header().Get("Content-Type"))
			rq.JSONEq(tc.body, w.Body.String())
		})
	}
}

func TestErrorWithoutTraceID(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	w := httptest.NewRecorder()
	reply.Error(context.Background(), w, errors.New("boom"))

	rq.Contains(w.Body.String(), `"supportId":"unsupported"`)
}
