package nbclient

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/my0373/nbcli/internal/client"
)

// Config carries the connection settings for a NetBox client.
type Config struct {
	// BaseURL is the NetBox base URL, e.g. "https://netbox.example.com".
	// A bare host is assumed to be https.
	BaseURL string
	// Token is the NetBox API token.
	Token string
	// Timeout bounds each HTTP request. Zero means the default.
	Timeout time.Duration
	// SkipTLSVerify disables TLS certificate verification.
	SkipTLSVerify bool
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

// Client is a NetBox catalog client.
type Client struct {
	catalog *client.Client
}

// New creates a NetBox client from connection settings.
func New(config *Config) (*Client, error) {
	catalog, err := client.New(&client.Config{
		BaseURL:       NormalizeBaseURL(config.BaseURL),
		Token:         config.Token,
		Timeout:       config.Timeout,
		SkipTLSVerify: config.SkipTLSVerify,
		UserAgent:     config.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	return &Client{catalog: catalog}, nil
}

// NormalizeBaseURL trims a trailing slash and defaults a bare host to https.
func NormalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return ""
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}

// BaseURL returns the normalized NetBox base URL.
func (c *Client) BaseURL() string {
	return c.catalog.BaseURL()
}

// Status fetches /api/status/.
func (c *Client) Status(ctx context.Context) (any, error) {
	return c.catalog.Status(ctx)
}

// Get fetches an absolute URL and decodes the JSON body.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) (any, error) {
	return c.catalog.Get(ctx, rawURL, params)
}

// GetPath fetches a catalog path relative to the base URL, e.g.
// "dcim/devices/1".
func (c *Client) GetPath(ctx context.Context, path string, params url.Values) (any, error) {
	return c.catalog.GetPath(ctx, path, params)
}

// ListAll fetches every page of a catalog endpoint and merges the results
// into a single {count, results} payload.
func (c *Client) ListAll(ctx context.Context, endpoint string, params url.Values) (any, error) {
	return c.catalog.ListAll(ctx, endpoint, params)
}

// FetchAll follows pagination from an absolute URL, failing fast on the
// first error.
func (c *Client) FetchAll(ctx context.Context, rawURL string, params url.Values) (any, error) {
	return c.catalog.FetchAll(ctx, rawURL, params)
}

// Index lists the catalog as application name -> sorted endpoint names.
func (c *Client) Index(ctx context.Context) (map[string][]string, error) {
	return c.catalog.Index(ctx)
}

// ShowPayload answers catalog discovery queries: "verbs", "apps",
// "endpoints", or a free-text search over app/endpoint paths.
func (c *Client) ShowPayload(ctx context.Context, kind string) (any, error) {
	return c.catalog.ShowPayload(ctx, kind)
}

// DumpPayload walks the whole catalog and wraps it in the dump metadata
// envelope. Endpoint failures degrade to {error, status} entries.
func (c *Client) DumpPayload(ctx context.Context, includeAll bool) (map[string]any, error) {
	return c.catalog.DumpPayload(ctx, includeAll)
}
