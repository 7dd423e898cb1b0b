// Package hyperspell is a small client for the Hyperspell REST API.
//
// It covers the calls the MCP adapter makes: listing collections, listing,
// fetching and adding documents, and querying. Response bodies are decoded
// into raw JSON objects rather than typed structs so callers can decide which
// fields they keep.
package hyperspell

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.hyperspell.com"

// DefaultTimeout bounds a single round trip when no timeout is configured.
const DefaultTimeout = 60 * time.Second

// maxResponseBytes caps how much of a response body is read into memory.
const maxResponseBytes = 32 << 20

var (
	// ErrConnection indicates the request never produced an HTTP response.
	ErrConnection = errors.New("connection error")
	// ErrTimeout indicates the request exceeded its deadline.
	ErrTimeout = errors.New("request timed out")
	// ErrDecode indicates a 2xx response whose body was not the expected JSON.
	ErrDecode = errors.New("malformed response body")
	// ErrInvalidParams indicates a request that cannot be sent as given.
	ErrInvalidParams = errors.New("invalid request parameters")
)

// Object is a raw JSON object from an API response. Numbers are kept as
// json.Number so integer identifiers survive decoding unchanged.
type Object map[string]any

// Client performs authenticated calls against the Hyperspell API.
// A Client is safe for concurrent use.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	timeout   time.Duration
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests and self-hosted setups).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. The client is never
// modified; combined with WithTimeout, a copy carries the timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout, regardless of option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a client that authenticates with the given API token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		token:     token,
		userAgent: "hyperspell-mcp",
	}
	for _, opt := range opts {
		opt(c)
	}

	switch {
	case c.http == nil:
		c.http = &http.Client{Timeout: cmp.Or(c.timeout, DefaultTimeout)}
	case c.timeout > 0:
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// BaseURL returns the endpoint requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// do sends one request and decodes a 2xx JSON body into out.
// query and body may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, RequestID(ctx))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return transportError(method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrDecode, method, path, err)
	}
	return nil
}

// transportError classifies a failure that happened before a status code
// was available.
func transportError(method, path string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s %s: %w", ErrTimeout, method, path, err)
	}
	return fmt.Errorf("%w: %s %s: %w", ErrConnection, method, path, err)
}
