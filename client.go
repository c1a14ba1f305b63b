package wit

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dialogkit/wit/internal/httpkit"
)

// Default API endpoint settings. Both can be overridden per client.
const (
	// DefaultAPIHost is the production API base URL.
	DefaultAPIHost = "https://api.wit.ai"

	// DefaultAPIVersion is the API contract version sent in the Accept
	// header when none is configured.
	DefaultAPIVersion = "20160516"
)

// Client is a Wit API client. It is safe for concurrent use and
// immutable after construction.
type Client struct {
	token      string
	apiHost    string
	apiVersion string
	logger     *slog.Logger
	httpClient *http.Client
	actions    *Actions
	sessions   *sessionTracker
}

// Option configures a Client built by New.
type Option func(*Client)

// WithAPIHost overrides the API base URL. Useful for proxies and for
// tests against a local httptest server.
func WithAPIHost(host string) Option {
	return func(c *Client) { c.apiHost = host }
}

// WithAPIVersion overrides the API contract version sent in the
// versioned Accept header.
func WithAPIVersion(version string) Option {
	return func(c *Client) { c.apiVersion = version }
}

// WithLogger sets the logger used for request tracing and action
// validation warnings. nil falls back to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient overrides the HTTP client. The default comes from
// httpkit with a 30s overall timeout; transport-level policy (TLS,
// pooling, retries, timeouts) belongs to this collaborator, not to the
// library.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithActions registers the conversation handlers RunActions dispatches
// to. The registry is soft-validated: defects are logged as warnings at
// construction time, never errors, so a partially wired registry still
// constructs (and fails later, per dispatch, if an unregistered action
// is actually requested).
func WithActions(a *Actions) Option {
	return func(c *Client) { c.actions = a }
}

// New creates a Wit client authenticated with the given access token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		token:      token,
		apiHost:    DefaultAPIHost,
		apiVersion: DefaultAPIVersion,
		sessions:   newSessionTracker(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.httpClient == nil {
		c.httpClient = httpkit.New(httpkit.WithTimeout(30 * time.Second))
	}
	if c.actions != nil {
		c.actions.validate(c.logger)
	}
	return c
}
