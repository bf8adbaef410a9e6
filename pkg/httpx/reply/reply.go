package reply

import (
	"context"
	"log/slog"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"epic_notifier/pkg/contextx"
	"epic_notifier/pkg/errcodes"
	"epic_notifier/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

type errorClass struct {
	is          func(error) bool
	status      int
	defaultCode failure.ErrorCode
}

//nolint:gochecknoglobals
var errorClasses = []errorClass{
	{failure.IsInvalidArgumentError, http.StatusBadRequest, errcodes.ValidationError},
	{failure.IsUnauthorizedError, http.StatusUnauthorized, errcodes.Unauthorized},
	{failure.IsForbiddenError, http.StatusForbidden, errcodes.Forbidden},
	{failure.IsNotFoundError, http.StatusNotFound, errcodes.NotFound},
	{failure.IsConflictError, http.StatusConflict, errcodes.Conflict},
	{failure.IsUnprocessableEntityError, http.StatusUnprocessableEntity, errcodes.ValidationError},
	{failure.IsTimeoutError, http.StatusGatewayTimeout, errcodes.TimeoutExceeded},
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

// Error renders err as {code, message, supportId}. Client errors are logged
// as warnings, everything else as errors with status 500.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errcodes.InternalServerError

	for _, c := range errorClasses {
		if c.is(err) {
			status, code = c.status, c.defaultCode

			break
		}
	}

	if explicit := failure.Code(err); explicit != "" {
		code = explicit
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	logger(ctx).Log(ctx, level, "request failed", slog.Int(logx.FieldResponseStatus, status), logx.Error(err))

	JSON(ctx, w, status, errorResponse{
		Code:      code.String(),
		Message:   failure.Description(err),
		SupportID: supportID(ctx),
	})
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
