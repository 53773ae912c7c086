package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// StackConfig selects the global middleware installed around the router.
type StackConfig struct {
	// TrustProxy rewrites the remote address from X-Forwarded-For,
	// X-Real-IP or True-Client-IP before logging and rate limiting. Those
	// headers are client controlled unless a proxy overwrites them.
	TrustProxy     bool
	AllowedOrigins []string
	// Metrics and RateLimiter are skipped when nil.
	Metrics     *Metrics
	RateLimiter *RateLimiter
}

// Stack composes the global middleware, outermost first. The request id
// wraps everything so that recovered panics are still logged with it.
func Stack(cfg StackConfig) Middleware {
	mws := []Middleware{RequestID}
	if cfg.TrustProxy {
		mws = append(mws, chimw.RealIP)
	}
	mws = append(mws, Logger, Recovery)
	if cfg.Metrics != nil {
		mws = append(mws, cfg.Metrics.Handler)
	}
	mws = append(mws, CORS(cfg.AllowedOrigins))
	if cfg.RateLimiter != nil {
		mws = append(mws, RateLimit(cfg.RateLimiter))
	}

	return func(next http.Handler) http.Handler {
		return Chain(next, mws...)
	}
}
