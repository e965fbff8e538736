package main

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"schoolPortal/internal/utils"
)

// RateLimiter is a per-client token bucket limiter.
type RateLimiter struct {
	rate       time.Duration
	capacity   int
	buckets    map[string]*tokenBucket
	mutex      sync.Mutex
	cleanupTTL time.Duration
	now        func() time.Time
}

type tokenBucket struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter allows requestsPerMinute steady state with bursts of up to
// burstCapacity.
func NewRateLimiter(requestsPerMinute int, burstCapacity int) *RateLimiter {
	return &RateLimiter{
		rate:       time.Minute / time.Duration(requestsPerMinute),
		capacity:   burstCapacity,
		buckets:    make(map[string]*tokenBucket),
		cleanupTTL: 10 * time.Minute,
		now:        time.Now,
	}
}

// Allow takes a token for client, reporting false when none is left.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	bucket, ok := rl.buckets[client]
	if !ok {
		bucket = &tokenBucket{tokens: rl.capacity, lastRefill: now}
		rl.buckets[client] = bucket
	}

	if refill := int(now.Sub(bucket.lastRefill) / rl.rate); refill > 0 {
		bucket.tokens += refill
		if bucket.tokens > rl.capacity {
			bucket.tokens = rl.capacity
		}
		bucket.lastRefill = now
	}

	if bucket.tokens == 0 {
		return false
	}
	bucket.tokens--
	return true
}

// Cleanup drops buckets idle for longer than the cleanup TTL.
func (rl *RateLimiter) Cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for client, bucket := range rl.buckets {
		if now.Sub(bucket.lastRefill) > rl.cleanupTTL {
			delete(rl.buckets, client)
		}
	}
}

// StartCleanupRoutine runs Cleanup every five minutes until ctx is done.
func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup()
			}
		}
	}()
}

// RateLimitMiddleware rejects clients that exhausted their bucket. Clients
// are keyed by peer address; forwarding headers count only when the peer is
// one of trusted.
func RateLimitMiddleware(limiter *RateLimiter, trusted []*net.IPNet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getRealIP(r, trusted)

			if !limiter.Allow(ip) {
				AppLogger.WithFields(map[string]interface{}{
					"ip":     ip,
					"method": r.Method,
					"path":   r.URL.Path,
				}).Warn("Rate limit exceeded")

				utils.RespondWithError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func getRealIP(r *http.Request, trusted []*net.IPNet) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !isTrusted(peer, trusted) {
		return peer
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	// Walk right to left: entries left of the first untrusted hop are
	// whatever the client chose to send.
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !isTrusted(hop, trusted) {
			return hop
		}
		peer = hop
	}
	return peer
}

func isTrusted(addr string, trusted []*net.IPNet) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
