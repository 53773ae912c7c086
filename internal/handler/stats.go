package handler

import (
	"net/http"

	"github.com/forgo/clubhub/api/internal/service"
)

// StatsHandler serves the dashboard counters
type StatsHandler struct {
	svc *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Get handles GET /stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request, _ Params) {
	stats, err := h.svc.Get(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusOK, "stats", stats)
}
