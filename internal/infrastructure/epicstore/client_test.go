package epicstore_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/internal/infrastructure/epicstore"
)

const storeURL = "https://store.example/p/"

type checkerStub struct {
	mu      sync.Mutex
	dead    map[string]bool
	checked []string
}

func (c *checkerStub) IsReachable(_ context.Context, url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checked = append(c.checked, url)

	return !c.dead[url]
}

func fixtureServer(t *testing.T, file string, inspect func(*http.Request)) *httptest.Server {
	t.Helper()

	body, err := os.ReadFile(file)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inspect != nil {
			inspect(r)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestFetchWeeklyFree(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	srv := fixtureServer(t, "testdata/promotions.json", func(r *http.Request) {
		rq.Equal(http.MethodGet, r.Method)
	})

	client := epicstore.NewClient(srv.Client(), &checkerStub{}).
		WithPromotionsURL(srv.URL).
		WithStoreURL(storeURL)

	offers := client.FetchWeeklyFree(context.Background(), entity.NewFilterConfig(10000, "INR", nil, false))
	rq.Len(offers, 2)

	hades := offers[0]
	rq.Equal("Hades", hades.Title)
	rq.Equal(storeURL+"hades", hades.URL)
	rq.Equal("Free", hades.DiscountedPrice)
	rq.Equal("₹1,100.00", hades.OriginalPrice)
	rq.Equal("https://cdn.example/hades.jpg", hades.ImageURL)
	rq.True(hades.IsFree)
	rq.Equal(time.Date(2025, 1, 9, 16, 0, 0, 0, time.UTC), hades.EndDate.UTC())
	rq.Equal("Hades_2025-01-09T16:00:00.000Z", hades.Key().String())

	indie := offers[1]
	rq.Equal("Cheap Indie", indie.Title)
	rq.Equal(storeURL+"cheap-indie", indie.URL)
	rq.Equal("₹49.00", indie.DiscountedPrice)
	rq.Equal(entity.NoDescription, indie.Description)
	rq.True(indie.IsCheap)
	rq.False(indie.IsFree)
}

func TestFetchWeeklyFreeFreeOnly(t *testing.T) {
	t.Parallel()

	srv := fixtureServer(t, "testdata/promotions.json", nil)

	client := epicstore.NewClient(srv.Client(), &checkerStub{}).WithPromotionsURL(srv.URL)

	offers := client.FetchWeeklyFree(context.Background(), entity.NewFilterConfig(10000, "INR", nil, true))
	require.Len(t, offers, 1)
	require.Equal(t, "Hades", offers[0].Title)
}

func TestFetchWeeklyFreeDegradesToEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"data": [`)
			},
		},
		{
			name: "graphql errors",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"errors":[{"message":"throttled"}],"data":null}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			t.Cleanup(srv.Close)

			client := epicstore.NewClient(srv.Client(), &checkerStub{}).WithPromotionsURL(srv.URL)

			require.Empty(t, client.FetchWeeklyFree(context.Background(), entity.NewFilterConfig(10000, "INR", nil, false)))
		})
	}
}

func TestSearchCheap(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	var gotBody string

	srv := fixtureServer(t, "testdata/search.json", func(r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
	})

	checker := &checkerStub{dead: map[string]bool{storeURL + "dead-link": true}}

	client := epicstore.NewClient(srv.Client(), checker).
		WithGraphQLURL(srv.URL).
		WithStoreURL(storeURL)

	events := make(chan entity.Event, 100)

	offers := client.SearchCheap(context.Background(), entity.NewFilterConfig(10000, "INR", nil, false), events)
	close(events)

	rq.Contains(gotBody, `"sortBy":"currentPrice"`)
	rq.Contains(gotBody, `"sortDir":"ASC"`)
	rq.Contains(gotBody, `"count":1000`)
	rq.Contains(gotBody, `"allowCountries":"IN"`)

	rq.Len(offers, 2)
	rq.Equal("Free Shooter", offers[0].Title)
	rq.Equal("https://cdn.example/thumb.jpg", offers[0].ImageURL)
	rq.Equal("Free", offers[0].DiscountedPrice)
	rq.Nil(offers[0].EndDate)
	rq.Equal("Cheap Puzzle", offers[1].Title)
	rq.Equal(storeURL+"cheap-puzzle", offers[1].URL)
	rq.True(offers[1].IsCheap)

	rq.Equal([]string{storeURL + "free-shooter", storeURL + "dead-link", storeURL + "cheap-puzzle"}, checker.checked)

	var (
		progress []int
		found    []string
		logs     []string
	)

	for ev := range events {
		switch ev.Type {
		case entity.EventProgress:
			rq.Equal(12, *ev.Total)
			progress = append(progress, *ev.Processed)
		case entity.EventFound:
			found = append(found, ev.Game.Title)
		case entity.EventLog:
			logs = append(logs, ev.Message)
		}
	}

	rq.Equal([]int{0, 10, 12}, progress)
	rq.Equal([]string{"Free Shooter", "Cheap Puzzle"}, found)
	rq.Equal([]string{
		"Fetching cheap games under 100 INR...",
		"Fetched 12 items. Processing filters...",
		"Skipped invalid URL: Dead Link Game",
	}, logs)
}

func TestSearchCheapCategoryGate(t *testing.T) {
	t.Parallel()

	srv := fixtureServer(t, "testdata/search.json", nil)

	client := epicstore.NewClient(srv.Client(), &checkerStub{}).WithGraphQLURL(srv.URL)

	offers := client.SearchCheap(context.Background(), entity.NewFilterConfig(10000, "INR", []string{"EDITION/BASE"}, true), nil)

	require.Len(t, offers, 2)
	require.Equal(t, "Free Shooter", offers[0].Title)
	require.Equal(t, "Dead Link Game", offers[1].Title)
}

func TestSearchCheapUpstreamFailure(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := epicstore.NewClient(srv.Client(), &checkerStub{}).WithGraphQLURL(srv.URL)

	events := make(chan entity.Event, 10)
	offers := client.SearchCheap(context.Background(), entity.NewFilterConfig(10000, "INR", nil, false), events)
	close(events)

	rq.Empty(offers)

	var last entity.Event
	for ev := range events {
		last = ev
	}

	rq.Equal(entity.LevelError, last.Level)
	rq.True(strings.HasPrefix(last.Message, "Error fetching cheap games: "))
}

func jsonServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

const unpricedElements = `{"data":{"Catalog":{"searchStore":{"elements":[
	{"title": "Priced Elsewhere", "urlSlug": "priced-elsewhere", "status": "ACTIVE",
	 "price": {"totalPrice": {"discountPrice": null, "originalPrice": 1999}},
	 "promotions": {"promotionalOffers": [{"promotionalOffers": [{"startDate": "2025-01-02T16:00:00.000Z", "endDate": "2025-01-09T16:00:00.000Z"}]}]}},
	{"title": "No Price Game", "urlSlug": "no-price", "status": "ACTIVE", "price": null,
	 "promotions": {"promotionalOffers": [{"promotionalOffers": [{"startDate": "2025-01-02T16:00:00.000Z", "endDate": "2025-01-09T16:00:00.000Z"}]}]}}
]}}}}`

func TestUnpricedEntriesAreSkipped(t *testing.T) {
	t.Parallel()

	for _, freeOnly := range []bool{true, false} {
		cfg := entity.NewFilterConfig(10000, "INR", nil, freeOnly)

		srv := jsonServer(t, unpricedElements)
		checker := &checkerStub{}

		client := epicstore.NewClient(srv.Client(), checker).
			WithGraphQLURL(srv.URL).
			WithPromotionsURL(srv.URL)

		require.Empty(t, client.SearchCheap(context.Background(), cfg, nil), "free only %v", freeOnly)
		require.Empty(t, checker.checked)
		require.Empty(t, client.FetchWeeklyFree(context.Background(), cfg), "free only %v", freeOnly)
	}
}

func TestFetchWeeklyFreeMalformedDate(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	srv := jsonServer(t, `{"data":{"Catalog":{"searchStore":{"elements":[
		{"title": "Odd Dates", "urlSlug": "odd-dates",
		 "price": {"totalPrice": {"discountPrice": 0, "originalPrice": 1000}},
		 "promotions": {"promotionalOffers": [{"promotionalOffers": [{"startDate": "soon", "endDate": "2025-13-45"}]}]}},
		{"title": "Hades", "urlSlug": "hades",
		 "price": {"totalPrice": {"discountPrice": 0, "originalPrice": 110000}},
		 "promotions": {"promotionalOffers": [{"promotionalOffers": [{"startDate": "2025-01-02T16:00:00.000Z", "endDate": "2025-01-09T16:00:00.000Z"}]}]}}
	]}}}}`)

	client := epicstore.NewClient(srv.Client(), &checkerStub{}).
		WithPromotionsURL(srv.URL).
		WithStoreURL(storeURL)

	offers := client.FetchWeeklyFree(context.Background(), entity.NewFilterConfig(10000, "INR", nil, false))
	rq.Len(offers, 2)

	rq.Equal("Odd Dates", offers[0].Title)
	rq.Nil(offers[0].StartDate)
	rq.Nil(offers[0].EndDate)

	rq.Equal("Hades", offers[1].Title)
	rq.Equal(time.Date(2025, 1, 9, 16, 0, 0, 0, time.UTC), offers[1].EndDate.UTC())
}
