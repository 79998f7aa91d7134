// Package client implements the NetBox catalog client: JSON requests over the
// raw transport, pagination aggregation in fail-fast and error-capturing
// variants, catalog index traversal, and the full-catalog dump.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	internalhttp "github.com/my0373/nbcli/internal/http"
	"github.com/my0373/nbcli/pkg/netbox"
)

// Config carries the connection settings for a Client.
type Config struct {
	// BaseURL is the NetBox base URL, e.g. "https://netbox.example.com".
	BaseURL string
	// Token is the NetBox API token.
	Token string
	// Timeout bounds each HTTP request. Zero means the transport default.
	Timeout time.Duration
	// SkipTLSVerify disables TLS certificate verification.
	SkipTLSVerify bool
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

// Client queries a NetBox catalog. All calls are synchronous and issue one
// logical request at a time; there is no shared mutable state across calls.
type Client struct {
	httpClient *internalhttp.Client
	baseURL    string
}

// New creates a catalog client from connection settings.
func New(config *Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, netbox.ErrMissingURL
	}

	if config.Token == "" {
		return nil, netbox.ErrMissingToken
	}

	opts := []internalhttp.Option{
		internalhttp.WithTimeout(config.Timeout),
		internalhttp.WithSkipTLSVerify(config.SkipTLSVerify),
		internalhttp.WithUserAgent(config.UserAgent),
	}

	return &Client{
		httpClient: internalhttp.NewClient(config.Token, opts...),
		baseURL:    config.BaseURL,
	}, nil
}

// BaseURL returns the configured NetBox base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches an absolute URL and decodes the JSON body. A 2xx response that
// does not decode yields a netbox.NotJSONError carrying the raw body.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) (any, error) {
	resp, err := c.httpClient.Get(ctx, rawURL, params)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, &netbox.NotJSONError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	return payload, nil
}

// GetPath fetches a catalog path relative to the base URL.
func (c *Client) GetPath(ctx context.Context, path string, params url.Values) (any, error) {
	return c.Get(ctx, netbox.EnsureTrailingSlash(netbox.BuildURL(c.baseURL, path)), params)
}

// Status fetches /api/status/.
func (c *Client) Status(ctx context.Context) (any, error) {
	return c.GetPath(ctx, "status", nil)
}

// aggregateMode selects how the pagination loop treats failures.
type aggregateMode int

const (
	// failFast propagates the first failure to the caller.
	failFast aggregateMode = iota
	// captureErrors converts a failure into an {error, status} payload so a
	// single unreachable endpoint degrades instead of aborting the dump.
	captureErrors
)

// fetchAll follows the "next" chain from rawURL and merges every page's
// results in server order. Query params apply to the first request only;
// subsequent next URLs already embed their own query state. A first page that
// is not list-shaped is returned verbatim, since pagination only applies to
// list endpoints.
func (c *Client) fetchAll(ctx context.Context, rawURL string, params url.Values, mode aggregateMode) (any, error) {
	results := []any{}
	nextURL := rawURL
	carried := params

	for nextURL != "" {
		payload, err := c.Get(ctx, nextURL, carried)
		carried = nil

		if err != nil {
			if mode == captureErrors {
				return errorResult(err), nil
			}

			return nil, err
		}

		page, ok := netbox.PageResults(payload)
		if !ok {
			return payload, nil
		}

		results = append(results, page...)
		nextURL = netbox.NextURL(payload)
	}

	return map[string]any{"count": len(results), "results": results}, nil
}

// FetchAll follows pagination from rawURL, failing fast on the first error.
func (c *Client) FetchAll(ctx context.Context, rawURL string, params url.Values) (any, error) {
	return c.fetchAll(ctx, rawURL, params, failFast)
}

// FetchAllSafe follows pagination from rawURL, converting any failure into an
// {error, status} payload instead of returning an error.
func (c *Client) FetchAllSafe(ctx context.Context, rawURL string) any {
	payload, _ := c.fetchAll(ctx, rawURL, nil, captureErrors)

	return payload
}

// ListAll fetches every page of a catalog endpoint relative to the base URL.
func (c *Client) ListAll(ctx context.Context, endpoint string, params url.Values) (any, error) {
	return c.FetchAll(ctx, netbox.EnsureTrailingSlash(netbox.BuildURL(c.baseURL, endpoint)), params)
}

// errorResult shapes a captured failure as the {error, status} object stored
// inside dump data. Transport failures carry status 0 because no response was
// received.
func errorResult(err error) map[string]any {
	var httpErr *netbox.HTTPError
	if errors.As(err, &httpErr) {
		return map[string]any{"error": httpErr.Body, "status": httpErr.StatusCode}
	}

	var notJSON *netbox.NotJSONError
	if errors.As(err, &notJSON) {
		return map[string]any{"error": notJSON.Body, "status": notJSON.StatusCode}
	}

	return map[string]any{"error": err.Error(), "status": 0}
}
