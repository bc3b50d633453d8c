// Package client provides the HTTP transport the user store loads through.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/userdeck/userdeck/internal/user"
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "userdeck/0.1"

// maxErrorBody caps how much of a failed response is kept for the error.
const maxErrorBody = 512

// HTTPClient issues plain GET requests and returns response bodies. It
// implements user.Getter.
type HTTPClient struct {
	token     string
	userAgent string
	client    *http.Client
}

var _ user.Getter = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout bounds each request. Zero, the default, means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.client.Timeout = d }
}

// WithToken sends an Authorization: Bearer header.
func WithToken(token string) Option {
	return func(c *HTTPClient) { c.token = token }
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) { c.userAgent = ua }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewHTTPClient creates a client. Without options it never times out and
// never retries.
func NewHTTPClient(opts ...Option) *HTTPClient {
	c := &HTTPClient{
		userAgent: DefaultUserAgent,
		client:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches url and returns the body of a 2xx response. Failures are
// returned as *user.FetchError.
func (c *HTTPClient) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &user.FetchError{Kind: user.KindNetwork, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	c.setAuth(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &user.FetchError{Kind: user.KindNetwork, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &user.FetchError{
			Kind:       user.KindStatus,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &user.FetchError{Kind: user.KindNetwork, URL: url, Err: err}
	}
	return body, nil
}

func (c *HTTPClient) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
