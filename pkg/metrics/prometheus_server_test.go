package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"epic_notifier/pkg/metrics"
)

func TestPrometheusServer(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "epic_notifier",
		Name:      "runs_total",
		Help:      "Pipeline runs.",
	})
	reg.MustRegister(runs)
	runs.Add(3)

	srv := httptest.NewServer(metrics.NewPrometheusServer("", reg).Handler())
	t.Cleanup(srv.Close)

	testCases := []struct {
		name       string
		endpoint   string
		statusCode int
		contains   string
	}{
		{
			name:       "metrics handler",
			endpoint:   "/metrics",
			statusCode: http.StatusOK,
			contains:   "epic_notifier_runs_total 3",
		},
		{
			name:       "unknown endpoint",
			endpoint:   "/invalid",
			statusCode: http.StatusNotFound,
			contains:   "404 page not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)

			resp, err := http.Get(srv.URL + tc.endpoint) //nolint:noctx
			rq.NoError(err)

			defer resp.Body.Close()

			rq.Equal(tc.statusCode, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			rq.NoError(err)
			rq.Contains(string(body), tc.contains)
		})
	}
}
