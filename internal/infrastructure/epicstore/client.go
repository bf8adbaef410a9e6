package epicstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"epic_notifier/internal/domain"
	"epic_notifier/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	DefaultPromotionsURL = "https://store-site-backend-static.ak.epicgames.com/freeGamesPromotions?locale=en-US&country=IN&allowCountries=IN"
	DefaultGraphQLURL    = "https://graphql.epicgames.com/graphql"
	DefaultStoreURL      = "https://store.epicgames.com/en-US/p/"
	DefaultSearchCount   = 1000
)

type Checker interface {
	IsReachable(ctx context.Context, url string) bool
}

// Client reads the public storefront catalog. Every failure degrades to an
// empty result.
type Client struct {
	httpClient    *http.Client
	checker       Checker
	promotionsURL string
	graphQLURL    string
	storeURL      string
	locale        string
	country       string
	searchCount   int
}

func NewClient(httpClient *http.Client, checker Checker) *Client {
	return &Client{
		httpClient:    httpClient,
		checker:       checker,
		promotionsURL: DefaultPromotionsURL,
		graphQLURL:    DefaultGraphQLURL,
		storeURL:      DefaultStoreURL,
		locale:        "en-US",
		country:       "IN",
		searchCount:   DefaultSearchCount,
	}
}

func (c *Client) WithPromotionsURL(url string) *Client {
	c.promotionsURL = url

	return c
}

func (c *Client) WithGraphQLURL(url string) *Client {
	c.graphQLURL = url

	return c
}

func (c *Client) WithStoreURL(url string) *Client {
	c.storeURL = url

	return c
}

func (c *Client) WithLocale(locale, country string) *Client {
	c.locale = locale
	c.country = country

	return c
}

func (c *Client) WithSearchCount(count int) *Client {
	c.searchCount = count

	return c
}

func (c *Client) getCatalog(ctx context.Context, method, url string, body []byte) ([]element, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.UpstreamFetchFailed, "catalog request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, domain.NewError(errcodes.UpstreamFetchFailed, fmt.Sprintf("catalog responded %s", resp.Status))
	}

	var payload catalogResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.WrapError(err, errcodes.UpstreamFetchFailed, "decode catalog response")
	}

	if len(payload.Errors) > 0 && len(payload.Data.Catalog.SearchStore.Elements) == 0 {
		messages := make([]string, 0, len(payload.Errors))
		for _, e := range payload.Errors {
			messages = append(messages, e.Message)
		}

		return nil, domain.NewError(errcodes.UpstreamFetchFailed, "catalog errors: "+strings.Join(messages, "; "))
	}

	return payload.Data.Catalog.SearchStore.Elements, nil
}
