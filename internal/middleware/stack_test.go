package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// spoofedRequests sends n requests from one socket, each claiming a
// different client address in the forwarding headers.
func spoofedRequests(t *testing.T, h http.Handler, n int) (limited int) {
	t.Helper()

	for i := 0; i < n; i++ {
		req := httptest.NewRequest(http.MethodGet, "/clubs", nil)
		req.RemoteAddr = "198.51.100.7:40000"
		fake := fmt.Sprintf("203.0.113.%d", i+1)
		req.Header.Set("X-Real-IP", fake)
		req.Header.Set("X-Forwarded-For", fake)
		req.Header.Set("True-Client-IP", fake)

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	return limited
}

func TestStack_ForwardingHeadersCannotEvadeRateLimit(t *testing.T) {
	t.Parallel()

	rl, _ := frozenLimiter(1, 1)
	h := Stack(StackConfig{AllowedOrigins: []string{"*"}, RateLimiter: rl})(okHandler())

	limited := spoofedRequests(t, h, 50)

	assert.Equal(t, 49, limited, "one socket gets one bucket")
	assert.Equal(t, 1, rl.size())
}

func TestStack_TrustProxyKeysOnForwardedAddress(t *testing.T) {
	t.Parallel()

	rl, _ := frozenLimiter(1, 1)
	h := Stack(StackConfig{TrustProxy: true, AllowedOrigins: []string{"*"}, RateLimiter: rl})(okHandler())

	limited := spoofedRequests(t, h, 5)

	assert.Zero(t, limited)
	assert.Equal(t, 5, rl.size())
}

func TestStack_OptionalLayers(t *testing.T) {
	t.Parallel()

	h := Stack(StackConfig{AllowedOrigins: []string{"https://clubs.example.com"}})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/clubs", nil)
	req.Header.Set("Origin", "https://clubs.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader), "request id is set")
	assert.Equal(t, "https://clubs.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestStack_RecoversPanics(t *testing.T) {
	t.Parallel()

	h := Stack(StackConfig{AllowedOrigins: []string{"*"}})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/clubs", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
}
