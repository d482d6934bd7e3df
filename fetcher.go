package smartsheet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.alis.build/alog"
	"go.alis.build/utils/retry"
)

// Fetcher is the transport the client talks to the API through. Each method
// decodes the JSON response body into out (when out is non-nil) or returns
// an error for a failed call.
type Fetcher interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body any, query url.Values, out any) error
}

// HTTPFetcher is the default Fetcher. It authenticates with a bearer token
// and retries network errors, 429 and 5xx responses with exponential backoff.
// POST requests are only retried on 429.
type HTTPFetcher struct {
	baseURL   *url.URL
	token     string
	client    *http.Client
	userAgent string
	attempts  int
	delay     time.Duration
}

// NewHTTPFetcher creates the default transport.
func NewHTTPFetcher(token string, opts ...Option) (*HTTPFetcher, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return newHTTPFetcher(token, o)
}

func newHTTPFetcher(token string, o *Options) (*HTTPFetcher, error) {
	base, err := url.Parse(o.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", o.baseURL, err)
	}
	attempts := o.retryAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := o.retryDelay
	if delay <= 0 {
		delay = time.Millisecond
	}
	client := o.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{
		baseURL:   base,
		token:     token,
		client:    client,
		userAgent: o.userAgent,
		attempts:  attempts,
		delay:     delay,
	}, nil
}

func (f *HTTPFetcher) Get(ctx context.Context, path string, query url.Values, out any) error {
	return f.do(ctx, http.MethodGet, path, query, nil, out)
}

func (f *HTTPFetcher) Post(ctx context.Context, path string, body, out any) error {
	return f.do(ctx, http.MethodPost, path, nil, body, out)
}

func (f *HTTPFetcher) Put(ctx context.Context, path string, body any, query url.Values, out any) error {
	return f.do(ctx, http.MethodPut, path, query, body, out)
}

func (f *HTTPFetcher) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := f.baseURL.JoinPath(strings.TrimPrefix(path, "/"))
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		attempt := 0
		data, err := retry.Retry(f.attempts, f.delay, func() ([]byte, error) {
			if err := ctx.Err(); err != nil {
				return nil, retry.NewNonRetryableError(err)
			}
			attempt++
			alog.Debugf(ctx, "smartsheet: %s %s (attempt %d)", method, u.Redacted(), attempt)
			data, err := f.send(ctx, method, u.String(), payload)
			if err == nil {
				return data, nil
			}
			if ctx.Err() != nil || !retryable(method, err) {
				return nil, retry.NewNonRetryableError(err)
			}
			if attempt < f.attempts {
				alog.Warnf(ctx, "smartsheet: %s %s failed, retrying: %v", method, path, err)
			}
			return nil, err
		})
		done <- result{data, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		// The backoff sleep cannot be interrupted; the pending attempt sees
		// the cancelled context and gives up without sending.
		return fmt.Errorf("%s %s: %w", method, path, ctx.Err())
	}
	if res.err != nil {
		return fmt.Errorf("%s %s: %w", method, path, res.err)
	}
	if out == nil || len(res.data) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// retryable reports whether a failed call may be sent again. POST creates
// resources, so it is only repeated when the service rejected it outright
// with 429; a network error or 5xx may follow a write that was applied.
func retryable(method string, err error) bool {
	var apiErr *APIError
	isAPI := errors.As(err, &apiErr)
	if method == http.MethodPost {
		return isAPI && apiErr.StatusCode == http.StatusTooManyRequests
	}
	return !isAPI || apiErr.Temporary()
}

func (f *HTTPFetcher) send(ctx context.Context, method, u string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+f.token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)
		return nil, apiErr
	}
	return data, nil
}
