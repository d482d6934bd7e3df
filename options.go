package smartsheet

import (
	"net/http"
	"time"
)

// DefaultBaseURL is the Smartsheet API 2.0 endpoint.
const DefaultBaseURL = "https://api.smartsheet.com/2.0/"

// Options holds configuration for the Client.
type Options struct {
	baseURL       string
	httpClient    *http.Client
	fetcher       Fetcher
	userAgent     string
	retryAttempts int
	retryDelay    time.Duration
}

func defaultOptions() *Options {
	return &Options{
		baseURL:       DefaultBaseURL,
		httpClient:    &http.Client{Timeout: 60 * time.Second},
		userAgent:     "smartsheet-go",
		retryAttempts: 3,
		retryDelay:    500 * time.Millisecond,
	}
}

// Option configures the Client.
type Option func(*Options)

// WithBaseURL overrides the API endpoint (default: DefaultBaseURL).
func WithBaseURL(u string) Option {
	return func(o *Options) { o.baseURL = u }
}

// WithHTTPClient sets the HTTP client used by the default transport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) { o.httpClient = c }
}

// WithFetcher replaces the HTTP transport entirely. The token is still
// required but is not used by the client itself.
func WithFetcher(f Fetcher) Option {
	return func(o *Options) { o.fetcher = f }
}

// WithUserAgent sets the User-Agent header of the default transport.
func WithUserAgent(ua string) Option {
	return func(o *Options) { o.userAgent = ua }
}

// WithRetry sets how many times the default transport attempts a request
// that fails with a network error, 429 or 5xx, and the base backoff delay.
// attempts <= 1 disables retries.
func WithRetry(attempts int, baseDelay time.Duration) Option {
	return func(o *Options) {
		o.retryAttempts = attempts
		o.retryDelay = baseDelay
	}
}

// loadOptions configures loading a sheet.
type loadOptions struct {
	createIfNotExist bool
	strict           bool
}

// LoadOption configures LoadSheet, LoadSheetByPermalink and LoadSheetByID.
type LoadOption func(*loadOptions)

// CreateIfNotExist creates the sheet from the schema when no sheet with the
// requested name exists. It has no effect on permalink or id lookups.
func CreateIfNotExist() LoadOption {
	return func(o *loadOptions) { o.createIfNotExist = true }
}

// Strict rejects live columns without a schema entry and schema entries
// without a live column. By default extra live columns are ignored.
func Strict() LoadOption {
	return func(o *loadOptions) { o.strict = true }
}
