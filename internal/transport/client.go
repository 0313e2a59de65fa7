// Package transport provides the authenticated HTTP client used to talk
// to the remote classroom service.
package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/hxeb/hxebclass/pkg/constants"
	"github.com/hxeb/hxebclass/pkg/errors"
	"github.com/hxeb/hxebclass/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http      *http.Client
	auth      Authenticator
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a new transport client with the specified authenticator.
func New(auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		http:      &http.Client{Timeout: DefaultHTTPTimeout},
		auth:      auth,
		userAgent: "hxebclass",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs an HTTP request with authentication applied. Failures to
// reach the service are returned as transport errors.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.auth.Apply(ctx, req); err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if req.Body != nil && (req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch) {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.FromContext(ctx).Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("Sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapTransport(req.Method, req.URL.Redacted(), err)
	}
	return resp, nil
}
