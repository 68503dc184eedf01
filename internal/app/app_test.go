package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImamJamdar/CGPA/internal/buildinfo"
	"github.com/ImamJamdar/CGPA/internal/config"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.LogLevel = "error"

	app, err := Initialize(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if app.limiter != nil {
			app.limiter.Stop()
		}
	})
	return app
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	w := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, buildinfo.Version, resp["version"])
}

func TestRootRedirect(t *testing.T) {
	app := newTestApp(t)

	w := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "github.com")
}

func TestMetricsEndpointOpenWithoutPassword(t *testing.T) {
	app := newTestApp(t)

	w := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestMetricsEndpointRequiresPassword(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.LogLevel = "error"
	cfg.MetricsPassword = "secret"

	app, err := Initialize(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if app.limiter != nil {
			app.limiter.Stop()
		}
	})

	w := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.SetBasicAuth(cfg.MetricsUsername, "secret")
	app.server.Handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUploadRouteWired(t *testing.T) {
	app := newTestApp(t)

	w := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", nil))

	// No multipart body at all: upfront validation rejects it.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Both course and result PDFs are required")
}
