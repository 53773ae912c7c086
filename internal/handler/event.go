package handler

import (
	"net/http"

	"github.com/forgo/clubhub/api/internal/service"
)

// EventHandler handles event HTTP requests
type EventHandler struct {
	svc *service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// List handles GET /events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request, _ Params) {
	events, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusOK, "events", events)
}

// Get handles GET /events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request, p Params) {
	event, err := h.svc.Get(r.Context(), p.ID("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusOK, "event", event)
}

// Create handles POST /events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request, _ Params) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	event, err := h.svc.Create(r.Context(), body)
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusCreated, "event", event)
}

// Update handles PUT /events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request, p Params) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	if err := h.svc.Update(r.Context(), p.ID("id"), body); err != nil {
		handleError(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Event updated successfully")
}

// Delete handles DELETE /events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request, p Params) {
	if err := h.svc.Delete(r.Context(), p.ID("id")); err != nil {
		handleError(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Event deleted successfully")
}
