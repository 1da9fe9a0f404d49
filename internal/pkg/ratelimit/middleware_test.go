package ratelimit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(lim *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(lim))
	r.POST("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func post(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = ip + ":1234"
	r.ServeHTTP(w, req)
	return w
}

func TestMiddleware_RateLimitExceeded(t *testing.T) {
	r := newRouter(New(2, time.Minute))

	require.Equal(t, http.StatusOK, post(r, "10.0.0.1").Code)
	require.Equal(t, http.StatusOK, post(r, "10.0.0.1").Code)

	w := post(r, "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMITED", body["code"])
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))

	assert.Equal(t, http.StatusOK, post(r, "10.0.0.2").Code)
}

func TestMiddleware_ZeroLimitDeniesAll(t *testing.T) {
	r := newRouter(New(0, time.Minute))
	assert.Equal(t, http.StatusTooManyRequests, post(r, "10.0.0.1").Code)
}

func TestMiddleware_ForwardedForDoesNotResetBudget(t *testing.T) {
	r := newRouter(New(1, time.Minute))
	require.NoError(t, r.SetTrustedProxies(nil))

	send := func(forwardedFor string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.2"))
}
