package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nbhttp "github.com/my0373/nbcli/internal/http"
	"github.com/my0373/nbcli/pkg/netbox"
)

func TestClient_Get(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/status/", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Token test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			_ = json.NewEncoder(writer).Encode(map[string]string{"netbox-version": "4.4.0"})
		}))
		defer server.Close()

		client := nbhttp.NewClient("test-token")

		resp, err := client.Get(context.Background(), server.URL+"/api/status/", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "4.4.0", result["netbox-version"])
	})

	t.Run("query parameters with repeated keys", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, []string{"active", "planned"}, request.URL.Query()["status"])
			assert.Equal(t, "50", request.URL.Query().Get("limit"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := nbhttp.NewClient("test-token")

		query := url.Values{"status": []string{"active", "planned"}}

		// Params merge with query state already embedded in the URL
		resp, err := client.Get(context.Background(), server.URL+"/api/dcim/devices/?limit=50", query)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("non-2xx returns HTTPError and the response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"detail":"Not found."}`))
		}))
		defer server.Close()

		client := nbhttp.NewClient("test-token")

		resp, err := client.Get(context.Background(), server.URL+"/api/dcim/devices/999/", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 404, resp.StatusCode)

		var httpErr *netbox.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 404, httpErr.StatusCode)
		assert.Equal(t, "Not Found", httpErr.Reason)
		assert.JSONEq(t, `{"detail":"Not found."}`, httpErr.Body)
	})

	t.Run("timeout is classified", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			time.Sleep(500 * time.Millisecond)
		}))
		defer server.Close()

		client := nbhttp.NewClient("test-token", nbhttp.WithTimeout(20*time.Millisecond))

		_, err := client.Get(context.Background(), server.URL+"/api/status/", nil)
		require.Error(t, err)

		var transportErr *netbox.TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Equal(t, netbox.TransportTimeout, transportErr.Kind)
	})

	t.Run("connection failure is classified", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
		endpoint := server.URL
		server.Close()

		client := nbhttp.NewClient("test-token")

		_, err := client.Get(context.Background(), endpoint+"/api/status/", nil)
		require.Error(t, err)

		var transportErr *netbox.TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Equal(t, netbox.TransportConnectionFailed, transportErr.Kind)
	})
}

func TestClient_UserAgent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "nbcli-test", request.Header.Get("User-Agent"))
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := nbhttp.NewClient("test-token", nbhttp.WithUserAgent("nbcli-test"))

	resp, err := client.Get(context.Background(), server.URL+"/api/", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
