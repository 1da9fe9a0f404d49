package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/goalpath/internal/config"
	"github.com/xyz-asif/goalpath/internal/pkg/logger"
)

func clientIP(t *testing.T, cfg *config.Config) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router, err := newRouter(cfg, logger.NewWithWriter(&bytes.Buffer{}, logger.ERROR))
	require.NoError(t, err)
	router.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = "10.0.0.1:4000"
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewRouterIgnoresForwardedForByDefault(t *testing.T) {
	assert.Equal(t, "10.0.0.1", clientIP(t, &config.Config{FrontendURL: "http://localhost:3000"}))
}

func TestNewRouterTrustsConfiguredProxies(t *testing.T) {
	assert.Equal(t, "203.0.113.9", clientIP(t, &config.Config{FrontendURL: "http://localhost:3000", TrustedProxies: []string{"10.0.0.0/8"}}))
}

func TestNewRouterRejectsBadProxy(t *testing.T) {
	_, err := newRouter(&config.Config{TrustedProxies: []string{"not-an-ip"}}, logger.Default())
	assert.ErrorContains(t, err, "TRUSTED_PROXIES")
}
