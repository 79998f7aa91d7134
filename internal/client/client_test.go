package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/my0373/nbcli/internal/client"
	"github.com/my0373/nbcli/pkg/netbox"
)

func newTestClient(t *testing.T, baseURL string) *client.Client {
	t.Helper()

	catalog, err := client.New(&client.Config{BaseURL: baseURL, Token: "test-token"})
	require.NoError(t, err)

	return catalog
}

func writeJSON(t *testing.T, writer http.ResponseWriter, payload any) {
	t.Helper()
	require.NoError(t, json.NewEncoder(writer).Encode(payload))
}

func TestNew_ValidatesConfig(t *testing.T) {
	t.Parallel()

	_, err := client.New(&client.Config{Token: "x"})
	assert.ErrorIs(t, err, netbox.ErrMissingURL)

	_, err = client.New(&client.Config{BaseURL: "https://nb.example.com"})
	assert.ErrorIs(t, err, netbox.ErrMissingToken)
}

func TestClient_Get(t *testing.T) {
	t.Parallel()

	t.Run("decodes json", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, map[string]any{"name": "rack-1"})
		}))
		defer server.Close()

		catalog := newTestClient(t, server.URL)

		payload, err := catalog.Get(context.Background(), server.URL+"/api/dcim/racks/1/", nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "rack-1"}, payload)
	})

	t.Run("2xx non-json body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte("<html>maintenance</html>"))
		}))
		defer server.Close()

		catalog := newTestClient(t, server.URL)

		_, err := catalog.Get(context.Background(), server.URL+"/api/status/", nil)
		require.Error(t, err)

		var notJSON *netbox.NotJSONError
		require.ErrorAs(t, err, &notJSON)
		assert.Equal(t, "<html>maintenance</html>", notJSON.Body)
		assert.Equal(t, netbox.ExitOK, netbox.ExitCode(err))
	})
}

func TestClient_GetPath(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/dcim/devices/", request.URL.Path)
		writeJSON(t, writer, map[string]any{"count": 0, "results": []any{}})
	}))
	defer server.Close()

	catalog := newTestClient(t, server.URL)

	_, err := catalog.GetPath(context.Background(), "dcim/devices", nil)
	require.NoError(t, err)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_FetchAll(t *testing.T) {
	t.Parallel()

	t.Run("merges pages in order", func(t *testing.T) {
		t.Parallel()

		var server *httptest.Server

		mux := http.NewServeMux()
		mux.HandleFunc("/api/dcim/devices/", func(writer http.ResponseWriter, request *http.Request) {
			switch request.URL.Query().Get("offset") {
			case "":
				// Params are applied to the first request only
				assert.Equal(t, "active", request.URL.Query().Get("status"))
				writeJSON(t, writer, map[string]any{
					"results": []any{"d1", "d2"},
					"next":    server.URL + "/api/dcim/devices/?offset=2",
				})
			case "2":
				assert.Empty(t, request.URL.Query().Get("status"))
				writeJSON(t, writer, map[string]any{
					"results": []any{"d3"},
					"next":    nil,
				})
			default:
				t.Errorf("unexpected offset %q", request.URL.Query().Get("offset"))
			}
		})

		server = httptest.NewServer(mux)
		defer server.Close()

		catalog := newTestClient(t, server.URL)

		params := url.Values{"status": []string{"active"}}

		payload, err := catalog.ListAll(context.Background(), "dcim/devices", params)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"count":   3,
			"results": []any{"d1", "d2", "d3"},
		}, payload)
	})

	t.Run("non-list first page returned verbatim", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, map[string]any{"netbox-version": "4.4.0"})
		}))
		defer server.Close()

		catalog := newTestClient(t, server.URL)

		payload, err := catalog.FetchAll(context.Background(), server.URL+"/api/status/", nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"netbox-version": "4.4.0"}, payload)
	})

	t.Run("empty list endpoint", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, map[string]any{"results": []any{}, "next": nil})
		}))
		defer server.Close()

		catalog := newTestClient(t, server.URL)

		payload, err := catalog.FetchAll(context.Background(), server.URL+"/api/dcim/racks/", nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"count": 0, "results": []any{}}, payload)
	})

	t.Run("fail fast propagates http error mid-chain", func(t *testing.T) {
		t.Parallel()

		var server *httptest.Server

		calls := 0

		server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			calls++
			if calls == 1 {
				writeJSON(t, writer, map[string]any{
					"results": []any{"d1"},
					"next":    server.URL + "/api/dcim/devices/?offset=1",
				})

				return
			}

			writer.WriteHeader(http.StatusBadGateway)
			_, _ = writer.Write([]byte("upstream down"))
		}))
		defer server.Close()

		catalog := newTestClient(t, server.URL)

		_, err := catalog.FetchAll(context.Background(), server.URL+"/api/dcim/devices/", nil)
		require.Error(t, err)

		var httpErr *netbox.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 502, httpErr.StatusCode)
		assert.Equal(t, 2, calls)
	})
}

func TestClient_FetchAllSafe(t *testing.T) {
	t.Parallel()

	t.Run("http failure becomes error result", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusForbidden)
			_, _ = writer.Write([]byte("permission denied"))
		}))
		defer server.Close()

		catalog := newTestClient(t, server.URL)

		payload := catalog.FetchAllSafe(context.Background(), server.URL+"/api/extras/scripts/")
		assert.Equal(t, map[string]any{"error": "permission denied", "status": 403}, payload)
	})

	t.Run("transport failure becomes error result with status 0", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
		endpoint := server.URL
		server.Close()

		catalog := newTestClient(t, endpoint)

		payload := catalog.FetchAllSafe(context.Background(), endpoint+"/api/extras/scripts/")

		result, ok := payload.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 0, result["status"])
		assert.Equal(t, "connection failed", result["error"])
	})

	t.Run("successful pagination still merges", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, map[string]any{"results": []any{"s1"}, "next": nil})
		}))
		defer server.Close()

		catalog := newTestClient(t, server.URL)

		payload := catalog.FetchAllSafe(context.Background(), server.URL+"/api/extras/scripts/")
		assert.Equal(t, map[string]any{"count": 1, "results": []any{"s1"}}, payload)
	})
}
