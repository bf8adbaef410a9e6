package epicstore

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"epic_notifier/pkg/logx"
)

const DefaultCheckTimeout = 3 * time.Second

// URLChecker issues HEAD requests and treats 200, 301 and 302 as reachable.
// Any other status or any error counts as unreachable. Reachable verdicts are
// memoized for a short TTL so dead links are checked again on the next run.
// Outbound checks are rate bounded.
type URLChecker struct {
	httpClient *http.Client
	cache      *cache.Cache
	limiter    *rate.Limiter
}

func NewURLChecker(httpClient *http.Client) *URLChecker {
	return &URLChecker{
		httpClient: httpClient,
		cache:      cache.New(10*time.Minute, 20*time.Minute),
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
}

// NewCheckHTTPClient builds a client with the check timeout that follows
// redirects.
func NewCheckHTTPClient(transport http.RoundTripper, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// WithCacheTTL sets how long a reachable verdict is kept. A ttl of zero or
// less disables memoization.
func (u *URLChecker) WithCacheTTL(ttl time.Duration) *URLChecker {
	if ttl <= 0 {
		u.cache = nil

		return u
	}

	u.cache = cache.New(ttl, 2*ttl)

	return u
}

func (u *URLChecker) WithRate(perSecond float64) *URLChecker {
	if perSecond > 0 {
		u.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}

	return u
}

func (u *URLChecker) IsReachable(ctx context.Context, url string) bool {
	if u.cache == nil {
		return u.check(ctx, url)
	}

	if _, ok := u.cache.Get(url); ok {
		return true
	}

	reachable := u.check(ctx, url)
	if reachable {
		u.cache.SetDefault(url, true)
	}

	return reachable
}

func (u *URLChecker) check(ctx context.Context, url string) bool {
	if err := u.limiter.Wait(ctx); err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, http.NoBody)
	if err != nil {
		return false
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		logger(ctx).Debug("URL validation failed", slog.String(logx.FieldURL, url), logx.Error(err))

		return false
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusMovedPermanently, http.StatusFound:
		return true
	default:
		return false
	}
}
