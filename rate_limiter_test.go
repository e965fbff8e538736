package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterRefills(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(6, 2)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "buckets are per client")

	now = now.Add(10 * time.Second)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(60, 1)
	rl.now = func() time.Time { return now }

	rl.Allow("idle")
	now = now.Add(11 * time.Minute)
	rl.Allow("busy")
	rl.Cleanup()

	assert.NotContains(t, rl.buckets, "idle")
	assert.Contains(t, rl.buckets, "busy")
}

func TestGetRealIP(t *testing.T) {
	trusted, err := parseTrustedProxies("10.0.0.0/24")
	require.NoError(t, err)

	tests := []struct {
		name       string
		remoteAddr string
		realIP     string
		forwarded  string
		want       string
	}{
		{"direct client", "203.0.113.7:5555", "", "", "203.0.113.7"},
		{"direct client spoofing headers", "203.0.113.7:5555", "198.51.100.3", "198.51.100.4", "203.0.113.7"},
		{"trusted proxy without headers", "10.0.0.1:5555", "", "", "10.0.0.1"},
		{"trusted proxy with X-Real-IP", "10.0.0.1:5555", "198.51.100.3", "203.0.113.9", "198.51.100.3"},
		{"trusted proxy with X-Forwarded-For", "10.0.0.1:5555", "", "203.0.113.7", "203.0.113.7"},
		{"client prepends a fake hop", "10.0.0.1:5555", "", "1.2.3.4, 203.0.113.7", "203.0.113.7"},
		{"chain of trusted proxies", "10.0.0.1:5555", "", "203.0.113.7, 10.0.0.2", "203.0.113.7"},
		{"only trusted hops", "10.0.0.1:5555", "", "10.0.0.3, 10.0.0.2", "10.0.0.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, getRealIP(r, trusted))
		})
	}

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	r.Header.Set("X-Real-IP", "198.51.100.3")
	assert.Equal(t, "10.0.0.1", getRealIP(r, nil), "no proxy is trusted by default")
}

func TestLoginLimitIgnoresSpoofedHeaders(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	handler := RateLimitMiddleware(limiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		r.RemoteAddr = "203.0.113.7:5555"
		r.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		r.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
