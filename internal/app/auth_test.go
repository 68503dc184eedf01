package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAuthRouter(enabled bool, username, password string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/metrics", metricsAuthMiddleware(enabled, username, password), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestMetricsAuthDisabled(t *testing.T) {
	router := newAuthRouter(false, "prometheus", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsAuthValidCredentials(t *testing.T) {
	router := newAuthRouter(true, "prometheus", "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.SetBasicAuth("prometheus", "secret")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsAuthRejections(t *testing.T) {
	router := newAuthRouter(true, "prometheus", "secret")

	tests := []struct {
		name     string
		username string
		password string
		noAuth   bool
	}{
		{name: "no credentials", noAuth: true},
		{name: "wrong username", username: "grafana", password: "secret"},
		{name: "wrong password", username: "prometheus", password: "guess"},
		{name: "both wrong", username: "grafana", password: "guess"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if !tt.noAuth {
				req.SetBasicAuth(tt.username, tt.password)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, `Basic realm="metrics"`, w.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestMetricsAuthMalformedHeader(t *testing.T) {
	router := newAuthRouter(true, "prometheus", "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Authorization", "Bearer not-basic-auth")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
