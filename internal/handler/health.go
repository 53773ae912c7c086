package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const defaultPingTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// HealthHandler reports service liveness
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
	now     func() time.Time
}

// NewHealthHandler creates a new health handler. A non-positive timeout
// falls back to two seconds.
func NewHealthHandler(db Pinger, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	return &HealthHandler{db: db, timeout: timeout, now: time.Now}
}

// Check handles GET /health and GET /. A store outage is reported in the
// body while the status stays 200.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request, _ Params) {
	resp := HealthResponse{
		Status:    "healthy",
		Message:   "ClubHub API is running",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Database:  "connected",
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		slog.Warn("health check ping failed", slog.String("error", err.Error()))
		resp.Status = "degraded"
		resp.Database = "disconnected"
	}

	WriteJSON(w, http.StatusOK, resp)
}
