package middlewarex

import (
	"net"
	"net/http"

	"epic_notifier/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// clientIP is the remote address without its port.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}

func truncate(b []byte, maxLen int) []byte {
	if maxLen > 0 && len(b) > maxLen {
		return b[:maxLen]
	}

	return b
}
