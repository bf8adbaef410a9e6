package contextx

import (
	"context"
	"errors"
	"fmt"
)

var ErrNoValue = errors.New("no value in context")

type (
	contextKeyLogger      struct{}
	contextKeyTraceID     struct{}
	contextKeyFingerprint struct{}
)

// TraceID correlates a panel request with its logs and error replies.
type TraceID string

func (t TraceID) String() string {
	return string(t)
}

// Fingerprint identifies an anonymous panel visitor.
type Fingerprint string

func (f Fingerprint) String() string {
	return string(f)
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	return valueFrom[TraceID](ctx, contextKeyTraceID{}, "trace id")
}

func WithFingerprint(ctx context.Context, fingerprint Fingerprint) context.Context {
	return context.WithValue(ctx, contextKeyFingerprint{}, fingerprint)
}

func FingerprintFromContext(ctx context.Context) (Fingerprint, error) {
	return valueFrom[Fingerprint](ctx, contextKeyFingerprint{}, "fingerprint")
}

func valueFrom[T any](ctx context.Context, key any, name string) (T, error) {
	v, ok := ctx.Value(key).(T)
	if !ok {
		var zero T

		return zero, fmt.Errorf("%s: %w", name, ErrNoValue)
	}

	return v, nil
}
