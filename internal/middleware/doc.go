// Package middleware provides the HTTP middleware wrapped around the
// ClubHub router.
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: one slog record per request, labelled with the route pattern
//   - Recovery: turns panics into {"error":"Internal server error"}
//   - CORS: rs/cors with preflight answered as 204
//   - RateLimit: per-IP token buckets from golang.org/x/time/rate
//   - Metrics: Prometheus counters and latency histograms
//   - StripPrefix and Preflight: path normalization used by the router
//
// Stack composes the global set in order. Forwarding headers are only
// trusted when StackConfig.TrustProxy is set; otherwise RateLimit keys on
// the socket address.
//
// Middlewares that read the route pattern must be installed on the chi
// router with Use so the pattern is known once the handler returns.
package middleware
