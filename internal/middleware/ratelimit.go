package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/forgo/clubhub/api/internal/model"
)

const (
	defaultRate  = 20
	defaultBurst = 40
	// Idle limiters are pruned once the map grows beyond this size, at
	// most once per pruneInterval.
	cleanupThreshold = 10000
	maxIdleAge       = 10 * time.Minute
	pruneInterval    = time.Minute
)

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	mu        sync.Mutex
	ips       map[string]*ipEntry
	lastPrune time.Time
	limit     rate.Limit
	burst     int
	now       func() time.Time
}

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	RPS   float64 // Sustained requests per second per IP (default 20)
	Burst int     // Bucket size (default 40)
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RPS <= 0 {
		cfg.RPS = defaultRate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}

	return &RateLimiter{
		ips:   make(map[string]*ipEntry),
		limit: rate.Limit(cfg.RPS),
		burst: cfg.Burst,
		now:   time.Now,
	}
}

// Allow reports whether a request from key may proceed now
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiter(key).AllowN(rl.now(), 1)
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if len(rl.ips) > cleanupThreshold && now.Sub(rl.lastPrune) >= pruneInterval {
		rl.lastPrune = now
		cutoff := now.Add(-maxIdleAge)
		for k, e := range rl.ips {
			if e.lastSeen.Before(cutoff) {
				delete(rl.ips, k)
			}
		}
	}

	e, ok := rl.ips[key]
	if !ok {
		e = &ipEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.ips[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// size returns the number of tracked clients
func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.ips)
}

// RateLimit returns a middleware that rejects clients exceeding their
// budget with 429.
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				model.NewRateLimitError().WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP keys on the connection's address. Forwarding headers are only
// honored when the RealIP middleware runs first, see StackConfig.TrustProxy.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
