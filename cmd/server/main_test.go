package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/adyax-ws/pkg/adyaxws/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg, err := config.Load(config.WithEventLogging(false))
	require.NoError(t, err)

	svc, cleanup, err := cfg.BuildService(context.Background())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(newRouter(svc, cfg, logger))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthRoutes(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/healthz/ready"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestNodeLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()

	call := func(method, query, body string) map[string]interface{} {
		t.Helper()
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req, err := http.NewRequest(method, srv.URL+BasePath+query, reader)
		require.NoError(t, err)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

		var out map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out
	}

	out := call(http.MethodPost, "", `{"title":"Hi","type":"article","body":"There"}`)
	assert.Equal(t, "Node successfully saved.", out["message"])

	out = call(http.MethodGet, "?id=1", "")
	assert.Equal(t, "Hi", out["title"])

	out = call(http.MethodPut, "?id=1", `{"title":"Hi again","type":"article","body":"There"}`)
	assert.Equal(t, "Node successfully updated.", out["message"])

	out = call(http.MethodDelete, "?id=1", "")
	assert.Equal(t, "Node successfully deleted.", out["message"])

	out = call(http.MethodGet, "?id=1", "")
	assert.Equal(t, []interface{}{"Node does not exists."}, out["errors"])
}
