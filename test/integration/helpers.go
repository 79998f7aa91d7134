// Package integration exercises complete nbcli workflows against a fake
// NetBox catalog: client construction, pagination, selection, rendering, and
// dump files.
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/my0373/nbcli/pkg/nbclient"
)

// fakeCatalog is a minimal NetBox: two applications, a paginated device
// list, one excluded endpoint, and one endpoint that always fails.
type fakeCatalog struct {
	server *httptest.Server
}

func newFakeCatalog(t *testing.T) *fakeCatalog {
	t.Helper()

	catalog := &fakeCatalog{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/", func(writer http.ResponseWriter, request *http.Request) {
		catalog.writeJSON(t, writer, map[string]any{
			"core":   catalog.server.URL + "/api/core/",
			"dcim":   catalog.server.URL + "/api/dcim/",
			"status": catalog.server.URL + "/api/status/",
		})
	})
	mux.HandleFunc("/api/status/", func(writer http.ResponseWriter, request *http.Request) {
		catalog.writeJSON(t, writer, map[string]any{
			"hostname":       "netbox01",
			"netbox-version": "4.4.0",
		})
	})
	mux.HandleFunc("/api/core/", func(writer http.ResponseWriter, request *http.Request) {
		catalog.writeJSON(t, writer, map[string]any{
			"jobs":         catalog.server.URL + "/api/core/jobs/",
			"object-types": catalog.server.URL + "/api/core/object-types/",
		})
	})
	mux.HandleFunc("/api/dcim/", func(writer http.ResponseWriter, request *http.Request) {
		catalog.writeJSON(t, writer, map[string]any{
			"devices": catalog.server.URL + "/api/dcim/devices/",
			"racks":   catalog.server.URL + "/api/dcim/racks/",
		})
	})
	mux.HandleFunc("/api/core/jobs/", func(writer http.ResponseWriter, request *http.Request) {
		catalog.writeJSON(t, writer, map[string]any{"results": []any{"job-1"}, "next": nil})
	})
	mux.HandleFunc("/api/core/object-types/", func(writer http.ResponseWriter, request *http.Request) {
		catalog.writeJSON(t, writer, map[string]any{"results": []any{}, "next": nil})
	})
	mux.HandleFunc("/api/dcim/devices/", func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Query().Get("offset") {
		case "":
			catalog.writeJSON(t, writer, map[string]any{
				"results": []any{
					map[string]any{"id": 1, "name": "edge-01"},
					map[string]any{"id": 2, "name": "edge-02"},
				},
				"next": catalog.server.URL + "/api/dcim/devices/?offset=2",
			})
		default:
			catalog.writeJSON(t, writer, map[string]any{
				"results": []any{map[string]any{"id": 3, "name": "leaf-01"}},
				"next":    nil,
			})
		}
	})
	mux.HandleFunc("/api/dcim/devices/1/", func(writer http.ResponseWriter, request *http.Request) {
		catalog.writeJSON(t, writer, map[string]any{"id": 1, "name": "edge-01", "status": "active"})
	})
	mux.HandleFunc("/api/dcim/racks/", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusForbidden)
		_, _ = writer.Write([]byte("permission denied"))
	})

	catalog.server = httptest.NewServer(mux)
	t.Cleanup(catalog.server.Close)

	return catalog
}

func (f *fakeCatalog) writeJSON(t *testing.T, writer http.ResponseWriter, payload any) {
	t.Helper()
	require.NoError(t, json.NewEncoder(writer).Encode(payload))
}

// Client creates a client pointed at the fake catalog.
func (f *fakeCatalog) Client(t *testing.T) *nbclient.Client {
	t.Helper()

	client, err := nbclient.New(&nbclient.Config{
		BaseURL: f.server.URL,
		Token:   "integration-token",
	})
	require.NoError(t, err)

	return client
}
