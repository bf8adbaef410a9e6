package httpx

import (
	"fmt"
	"net/http"
)

// HeaderRoundTripper sets a fixed set of headers on every outgoing request
// that does not already carry them.
type HeaderRoundTripper struct {
	next    http.RoundTripper
	headers http.Header
}

func NewHeaderRoundTripper(
	next http.RoundTripper,
	headers http.Header,
) HeaderRoundTripper {
	return HeaderRoundTripper{
		next:    next,
		headers: headers,
	}
}

func (rt HeaderRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	for name, values := range rt.headers {
		if req.Header.Get(name) != "" {
			continue
		}

		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
