// Package http provides the raw HTTP transport for the NetBox API: a single
// request attempt per call, token authentication, and classification of every
// failure into the netbox error taxonomy. Retries and backoff are deliberately
// absent; callers needing repetition use the pagination aggregator in
// internal/client.
package http

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/my0373/nbcli/internal/constants"
	"github.com/my0373/nbcli/pkg/netbox"
)

// Client issues authenticated requests against absolute NetBox URLs.
type Client struct {
	token      string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithSkipTLSVerify disables TLS certificate verification.
func WithSkipTLSVerify(skip bool) Option {
	return func(c *Client) {
		if !skip {
			return
		}

		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via --insecure

		c.httpClient.Transport = transport
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// NewClient creates a transport that authenticates with the given token.
func NewClient(token string, opts ...Option) *Client {
	client := &Client{
		token:     token,
		userAgent: constants.UserAgent,
		httpClient: &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Response is a received HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Reason     string
	Body       []byte
}

// Do issues one request. Query parameters are merged into any already present
// on the URL, with repeated keys serialized as repeated parameters. Non-2xx
// responses return both the Response and a netbox.HTTPError; network-level
// failures return a netbox.TransportError.
func (c *Client) Do(ctx context.Context, method, rawURL string, query url.Values) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	if len(query) > 0 {
		merged := req.URL.Query()
		for key, values := range query {
			for _, value := range values {
				merged.Add(key, value)
			}
		}

		req.URL.RawQuery = merged.Encode()
	}

	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &netbox.TransportError{Kind: netbox.TransportOther, Err: err}
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Reason:     http.StatusText(resp.StatusCode),
		Body:       body,
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return response, &netbox.HTTPError{
			StatusCode: response.StatusCode,
			Reason:     response.Reason,
			Body:       string(body),
		}
	}

	return response, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values) (*Response, error) {
	return c.Do(ctx, http.MethodGet, rawURL, query)
}

// classifyTransportError maps a request error onto the fixed taxonomy:
// timeout, connection failure, or other.
func classifyTransportError(err error) *netbox.TransportError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &netbox.TransportError{Kind: netbox.TransportTimeout, Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &netbox.TransportError{Kind: netbox.TransportConnectionFailed, Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &netbox.TransportError{Kind: netbox.TransportConnectionFailed, Err: err}
	}

	return &netbox.TransportError{Kind: netbox.TransportOther, Err: err}
}
