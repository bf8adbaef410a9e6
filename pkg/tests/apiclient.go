package tests

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var ErrUnexpectedStatus = errors.New("unexpected status")

// APIClient talks JSON to the notifier HTTP server in tests. Cookies set by
// the server stick to the client when its http.Client carries a jar.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(
	baseURL string,
	httpClient *http.Client,
) APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// NewSessionClient returns a client with its own cookie jar.
func NewSessionClient(baseURL string) (APIClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return APIClient{}, fmt.Errorf("cookiejar.New: %w", err)
	}

	return NewAPIClient(baseURL, &http.Client{Jar: jar}), nil
}

func (a APIClient) HTTPClient() *http.Client {
	return a.httpClient
}

func (a APIClient) Get(
	ctx context.Context,
	endpoint string,
	headers http.Header,
	dest any,
	errDest any,
) (*http.Response, error) {
	return a.do(ctx, http.MethodGet, endpoint, headers, http.NoBody, dest, errDest)
}

// Post sends request as JSON. Strings and json.RawMessage go out as is, so
// malformed bodies can be posted too.
func (a APIClient) Post(
	ctx context.Context,
	endpoint string,
	headers http.Header,
	request any,
	dest any,
	errDest any,
) (*http.Response, error) {
	var b []byte

	switch v := request.(type) {
	case string:
		b = []byte(v)
	case jsoniter.RawMessage:
		b = v
	default:
		var err error
		if b, err = json.Marshal(request); err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}
	}

	if headers == nil {
		headers = http.Header{}
	}

	if headers.Get("Content-Type") == "" {
		headers.Set("Content-Type", "application/json")
	}

	return a.do(ctx, http.MethodPost, endpoint, headers, bytes.NewReader(b), dest, errDest)
}

// Login opens an admin session. The session cookie lands in the client jar.
func (a APIClient) Login(ctx context.Context, username, password string) error {
	resp, err := a.Post(ctx, "/login", nil, map[string]string{
		"username": username,
		"password": password,
	}, nil, nil)
	if err != nil {
		return fmt.Errorf("a.Post: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login: %w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}

// Stream opens a server-sent events endpoint and hands every data payload to
// fn until the server closes the stream.
func (a APIClient) Stream(
	ctx context.Context,
	endpoint string,
	fn func(data []byte) error,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	slog.DebugContext(ctx, "test stream opened", slog.String("url", req.URL.String()), slog.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		data, ok := strings.CutPrefix(scanner.Text(), "data: ")
		if !ok {
			continue
		}

		if err = fn([]byte(data)); err != nil {
			return resp, err
		}
	}

	if err = scanner.Err(); err != nil {
		return resp, fmt.Errorf("scanner.Err: %w", err)
	}

	return resp, nil
}

func (a APIClient) do(
	ctx context.Context,
	method string,
	endpoint string,
	headers http.Header,
	payload io.Reader,
	dest any,
	errDest any,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	for k, v := range headers {
		req.Header[k] = v
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	slog.DebugContext(ctx, "test request",
		slog.String("method", method),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.String("body", string(body)),
	)

	if err = decode(resp.StatusCode, body, dest, errDest); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return resp, nil
}

func decode(status int, body []byte, dest, errDest any) error {
	target := errDest
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		target = dest
	}

	if target == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("json.Unmarshal(%d): %w", status, err)
	}

	return nil
}
