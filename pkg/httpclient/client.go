// Package httpclient wraps net/http for the service's outbound calls.
//
// Every external call in this service is attempted exactly once; failures are
// handled at the caller (tool fallbacks, conversation-visible errors), never
// by transparent retries.
package httpclient

import (
	"net/http"
	"time"
)

type Client struct {
	client    *http.Client
	userAgent string
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

func New(opts ...Option) *Client {
	client := &Client{
		client: &http.Client{Timeout: 60 * time.Second},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes the request once. Non-2xx responses are returned to the caller
// together with a typed *StatusError so callers can branch on the code without
// re-reading the body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	return resp, &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
}
