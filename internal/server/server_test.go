package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"epic_notifier/internal/config"
	"epic_notifier/internal/domain/entity"
	"epic_notifier/internal/domain/service/pipeline"
	"epic_notifier/internal/infrastructure/persistence"
	"epic_notifier/internal/server"
	"epic_notifier/pkg/logx"
	"epic_notifier/pkg/rest"
	"epic_notifier/pkg/tests"
)

type runnerStub struct {
	kinds []pipeline.Kind
}

func (r *runnerStub) Execute(
	ctx context.Context,
	kind pipeline.Kind,
	extra ...pipeline.Observer,
) (*pipeline.Summary, error) {
	r.kinds = append(r.kinds, kind)

	summary := pipeline.NewSummary()
	events := []entity.Event{
		entity.LogEvent(entity.LevelInfo, "Starting scraper process..."),
		entity.FoundEvent(entity.GameOffer{Title: "Hades", IsFree: true}),
		entity.StatusEvent(entity.StatusSuccess),
	}

	for _, ev := range events {
		summary.Observe(ctx, ev)

		for _, o := range extra {
			o.Observe(ctx, ev)
		}
	}

	return summary, nil
}

type fixture struct {
	repo   *persistence.Repository
	runner *runnerStub
	url    string
}

func newFixture(t *testing.T, rateLimit string) *fixture {
	t.Helper()

	repo := persistence.NewRepository(persistence.NewFileStore(t.TempDir()))
	runner := &runnerStub{}

	auth, err := server.NewAuth(config.Admin{Username: "admin", Password: "s3cret", SessionSecret: "test-secret"})
	require.NoError(t, err)

	srv, err := server.NewServer(
		server.NewAdminServer(repo, runner, "file"),
		server.NewPublicServer(repo),
		auth,
	).WithPublicRateLimit(rateLimit)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler(logx.NewNopSensitiveDataMasker(), 1024))
	t.Cleanup(ts.Close)

	return &fixture{repo: repo, runner: runner, url: ts.URL}
}

func (f *fixture) client(t *testing.T) tests.APIClient {
	t.Helper()

	c, err := tests.NewSessionClient(f.url)
	require.NoError(t, err)

	return c
}

func (f *fixture) login(t *testing.T, c tests.APIClient) {
	t.Helper()

	var res rest.LoginResult

	resp, err := c.Post(context.Background(), "/login", nil, rest.Credentials{Username: "admin", Password: "s3cret"}, &res, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, rest.LoginResult{Success: true, Redirect: "/controls"}, res)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t, "100-M")
	c := f.client(t)

	var apiErr rest.Error

	resp, err := c.Get(ctx, "/api/settings", nil, nil, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusUnauthorized, resp.StatusCode)
	rq.Equal("Authentication required", apiErr.Message)

	resp, err = c.Post(ctx, "/login", nil, rest.Credentials{Username: "admin", Password: "nope"}, nil, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusUnauthorized, resp.StatusCode)
	rq.Equal(rest.ErrorCode("CredentialsMismatch"), apiErr.Code)
	rq.Equal("Invalid credentials", apiErr.Message)

	f.login(t, c)

	var settings rest.AdminSettings

	resp, err = c.Get(ctx, "/api/settings", nil, &settings, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(entity.DefaultCurrency, settings.Currency)
	rq.Equal("file", settings.StorageMode)

	resp, err = c.Post(ctx, "/logout", nil, struct{}{}, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	resp, err = c.Get(ctx, "/api/settings", nil, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestSettings(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t, "100-M")
	c := f.client(t)
	f.login(t, c)

	var msg rest.Message

	resp, err := c.Post(ctx, "/api/settings", nil, `{
		"price_threshold": 250,
		"currency": "usd",
		"emails": ["a@example.com"],
		"categories": ["games/edition/base"],
		"deep_search_free": true
	}`, &msg, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("Settings saved successfully", msg.Message)

	stored, err := f.repo.ReadSettings(ctx)
	rq.NoError(err)
	rq.Equal(entity.Settings{
		PriceThreshold: 250,
		Currency:       "USD",
		Emails:         []string{"a@example.com"},
		Categories:     []string{"games/edition/base"},
		DeepSearchFree: true,
	}, stored)

	var apiErr rest.Error

	for _, body := range []string{
		`{"price_threshold": -1, "currency": "USD"}`,
		`{"price_threshold": 1, "currency": "US"}`,
		`{"price_threshold": 1, "currency": "USD", "emails": ["not-an-email"]}`,
		`{`,
	} {
		resp, err = c.Post(ctx, "/api/settings", nil, body, nil, &apiErr)
		rq.NoError(err)
		rq.Equal(http.StatusBadRequest, resp.StatusCode, body)
		rq.Equal(rest.ErrorCode("ValidationError"), apiErr.Code)
	}

	var stats rest.Stats

	resp, err = c.Get(ctx, "/api/db_stats", nil, &stats, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(rest.Stats{Mode: "file", Backend: "file", SettingsCount: 1}, stats)
}

func TestRegisterAndUnregister(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t, "100-M")
	c := f.client(t)

	var me rest.Visitor

	_, err := c.Get(ctx, "/api/me", nil, &me, nil)
	rq.NoError(err)
	rq.False(me.Registered)

	var res rest.Result

	resp, err := c.Post(ctx, "/api/register_email", nil, rest.RegisterEmail{Email: "fan@example.com"}, &res, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.True(res.Success)

	_, err = c.Get(ctx, "/api/me", nil, &me, nil)
	rq.NoError(err)
	rq.True(me.Registered)
	rq.Equal("fan@example.com", me.Email)

	var public rest.Settings

	_, err = c.Get(ctx, "/api/public", nil, &public, nil)
	rq.NoError(err)
	rq.Equal([]string{"***@example.com"}, public.Emails)

	resp, err = c.Post(ctx, "/api/unregister_email", nil, struct{}{}, &res, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	var apiErr rest.Error

	resp, err = c.Post(ctx, "/api/unregister_email", nil, struct{}{}, nil, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
	rq.Equal(rest.ErrorCode("EmailNotRegistered"), apiErr.Code)

	resp, err = c.Post(ctx, "/api/register_email", nil, rest.RegisterEmail{Email: "nope"}, nil, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)

	settings, err := f.repo.ReadSettings(ctx)
	rq.NoError(err)
	rq.Empty(settings.Emails)
}

func TestPublicRateLimit(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t, "2-M")
	c := f.client(t)

	for range 2 {
		resp, err := c.Post(ctx, "/api/register_email", nil, rest.RegisterEmail{Email: "fan@example.com"}, nil, nil)
		rq.NoError(err)
		rq.Equal(http.StatusOK, resp.StatusCode)
	}

	var apiErr rest.Error

	resp, err := c.Post(ctx, "/api/register_email", nil, rest.RegisterEmail{Email: "fan@example.com"}, nil, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusTooManyRequests, resp.StatusCode)
	rq.Equal(rest.ErrorCode("TooManyRequests"), apiErr.Code)
}

func TestGamesHistory(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t, "100-M")

	rq.NoError(f.repo.AddGameToHistory(ctx, entity.HistoryGame{GameOffer: entity.GameOffer{Title: "Hades"}}))

	var games []rest.Game

	resp, err := f.client(t).Get(ctx, "/api/games_history", nil, &games, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(games, 1)
	rq.Equal("Hades", games[0].Title)
	rq.False(games[0].FoundDate.IsZero())
}

func readStream(t *testing.T, c tests.APIClient, path string) (*http.Response, []entity.Event) {
	t.Helper()

	var events []entity.Event

	resp, err := c.Stream(context.Background(), path, func(data []byte) error {
		var ev entity.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}

		events = append(events, ev)

		return nil
	})
	require.NoError(t, err)

	return resp, events
}

func TestStreamRun(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "100-M")

	c := f.client(t)
	require.NoError(t, c.Login(context.Background(), "admin", "s3cret"))

	for _, tc := range []struct {
		path string
		kind pipeline.Kind
	}{
		{path: "/api/stream_run", kind: pipeline.KindScheduled},
		{path: "/api/stream_run?force=true", kind: pipeline.KindForced},
		{path: "/api/stream_run?force=false", kind: pipeline.KindScheduled},
		{path: "/api/stream_search", kind: pipeline.KindSearch},
	} {
		t.Run(tc.path, func(t *testing.T) {
			rq := require.New(t)

			resp, events := readStream(t, c, tc.path)
			rq.Equal(http.StatusOK, resp.StatusCode)
			rq.Equal("text/event-stream", resp.Header.Get("Content-Type"))
			rq.Len(events, 4)
			rq.Equal(entity.EventLog, events[0].Type)
			rq.Equal("Hades", events[1].Game.Title)
			rq.Equal(entity.StatusSuccess, events[2].Status)
			rq.Equal(entity.EventComplete, events[3].Type)
			rq.Equal(tc.kind, f.runner.kinds[len(f.runner.kinds)-1])
		})
	}
}
