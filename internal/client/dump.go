package client

import (
	"context"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/my0373/nbcli/pkg/netbox"
)

// Noisy endpoints excluded from dumps unless explicitly requested: both grow
// without bound on a busy installation.
var excludedEndpoints = map[string]struct{}{
	"core/jobs":           {},
	"core/object-changes": {},
}

// Verbs recognized by the CLI, reported by ShowPayload("verbs").
var showVerbs = []any{"status", "get", "list", "dump", "show"}

// Root fetches the catalog root: an object mapping application name to
// application URL, plus one reserved "status" entry.
func (c *Client) Root(ctx context.Context) (map[string]any, error) {
	payload, err := c.Get(ctx, netbox.EnsureTrailingSlash(strings.TrimRight(c.baseURL, "/")+"/api"), nil)
	if err != nil {
		return nil, err
	}

	root, ok := payload.(map[string]any)
	if !ok {
		return nil, netbox.ErrUnexpectedRootShape
	}

	return root, nil
}

// Index lists the catalog as application name -> sorted endpoint names by
// fetching the root and then each application's own endpoint listing.
func (c *Client) Index(ctx context.Context) (map[string][]string, error) {
	root, err := c.Root(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string][]string, len(root))

	for _, app := range netbox.SortedKeys(root) {
		if app == "status" {
			continue
		}

		appURL, ok := root[app].(string)
		if !ok {
			continue
		}

		payload, err := c.Get(ctx, appURL, nil)
		if err != nil {
			return nil, err
		}

		index[app] = appEndpoints(payload)
	}

	return index, nil
}

// DumpData walks the whole catalog (root -> apps -> endpoints) and returns a
// nested app -> endpoint -> contents map. Endpoint contents are fully
// paginated in error-capturing mode, so one failing endpoint becomes an
// {error, status} entry rather than aborting the dump. Applications are
// visited in sorted order for determinism.
func (c *Client) DumpData(ctx context.Context, includeAll bool) (map[string]any, error) {
	root, err := c.Root(ctx)
	if err != nil {
		return nil, err
	}

	data := map[string]any{}

	for _, app := range netbox.SortedKeys(root) {
		if app == "status" {
			continue
		}

		appURL, ok := root[app].(string)
		if !ok {
			continue
		}

		payload, err := c.Get(ctx, appURL, nil)
		if err != nil {
			return nil, err
		}

		appData := map[string]any{}

		for _, endpoint := range appEndpoints(payload) {
			if _, excluded := excludedEndpoints[app+"/"+endpoint]; excluded && !includeAll {
				continue
			}

			endpointURL := netbox.EnsureTrailingSlash(netbox.JoinURL(appURL, endpoint))
			appData[endpoint] = c.FetchAllSafe(ctx, endpointURL)
		}

		data[app] = appData
	}

	return data, nil
}

// DumpPayload wraps the full catalog dump in its metadata envelope: reported
// hostname, UTC timestamp, local timezone label, and a short identifier
// derived from the base URL's hostname.
func (c *Client) DumpPayload(ctx context.Context, includeAll bool) (map[string]any, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return nil, err
	}

	hostname := "unknown"
	if object, ok := status.(map[string]any); ok {
		if name, ok := object["hostname"].(string); ok && name != "" {
			hostname = name
		}
	}

	data, err := c.DumpData(ctx, includeAll)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"netbox_data": map[string]any{
			"hostname":      hostname,
			"dump_datetime": time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
			"dump_timezone": localTimezone(),
			"nb_id":         shortHostID(c.baseURL),
			"data":          data,
		},
	}, nil
}

// ShowPayload answers the show command: static verbs, the application list,
// the flat endpoint list, or a free-text search over app/endpoint paths.
func (c *Client) ShowPayload(ctx context.Context, kind string) (any, error) {
	if kind == "verbs" || kind == "commands" {
		return map[string]any{"verbs": showVerbs}, nil
	}

	index, err := c.Index(ctx)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "apps":
		return map[string]any{"apps": toValues(appsOf(index))}, nil
	case "endpoints", "get", "list":
		return map[string]any{"endpoints": toValues(flatEndpoints(index, ""))}, nil
	default:
		return map[string]any{"endpoints": toValues(flatEndpoints(index, strings.ToLower(kind)))}, nil
	}
}

// appEndpoints returns an application's endpoint names, sorted. A listing
// that is not an object has no endpoints.
func appEndpoints(payload any) []string {
	object, ok := payload.(map[string]any)
	if !ok {
		return nil
	}

	return netbox.SortedKeys(object)
}

// flatEndpoints flattens the index into sorted "app/endpoint" paths,
// optionally keeping only those containing the lowercase query.
func flatEndpoints(index map[string][]string, query string) []string {
	var flat []string

	for _, app := range appsOf(index) {
		for _, endpoint := range index[app] {
			path := app + "/" + endpoint
			if query == "" || strings.Contains(strings.ToLower(path), query) {
				flat = append(flat, path)
			}
		}
	}

	return flat
}

func appsOf(index map[string][]string) []string {
	apps := make([]string, 0, len(index))
	for app := range index {
		apps = append(apps, app)
	}

	sort.Strings(apps)

	return apps
}

// toValues widens []string into []any so selectors index the payload the
// same way they index decoded JSON.
func toValues(values []string) []any {
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}

	return out
}

// localTimezone reports the timezone label recorded in dump metadata: the TZ
// environment variable when set, otherwise the process's local zone name.
func localTimezone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}

	zone, _ := time.Now().Zone()

	return zone
}

// shortHostID derives the short catalog identifier from a base URL: the
// first DNS label of its hostname.
func shortHostID(baseURL string) string {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Hostname() == "" {
		return "unknown"
	}

	return strings.Split(parsed.Hostname(), ".")[0]
}
