package middlewarex

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"epic_notifier/pkg/contextx"
	"epic_notifier/pkg/logx"
)

// Fingerprint identifies an anonymous visitor by sha256("ip:user-agent").
func Fingerprint(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fp := FingerprintOf(r)

		ctx := contextx.WithFingerprint(r.Context(), fp)
		ctx = contextx.WithLogger(ctx, logger(ctx).With(logx.Stringer(logx.FieldFingerprint, fp)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func FingerprintOf(r *http.Request) contextx.Fingerprint {
	sum := sha256.Sum256([]byte(clientIP(r) + ":" + r.UserAgent()))

	return contextx.Fingerprint(hex.EncodeToString(sum[:]))
}
