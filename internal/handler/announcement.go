package handler

import (
	"net/http"

	"github.com/forgo/clubhub/api/internal/service"
)

const msgAnnouncementDeleted = "Announcement deleted successfully"

// AnnouncementHandler serves general and club-scoped announcements
type AnnouncementHandler struct {
	svc *service.AnnouncementService
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(svc *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{svc: svc}
}

// List handles GET /announcements
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request, _ Params) {
	announcements, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusOK, "announcements", announcements)
}

// Create handles POST /announcements
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request, _ Params) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	announcement, err := h.svc.Create(r.Context(), body)
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusCreated, "announcement", announcement)
}

// Delete handles DELETE /announcements/{id}. It succeeds even when the
// announcement does not exist.
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request, p Params) {
	if err := h.svc.Delete(r.Context(), p.ID("id")); err != nil {
		handleError(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, msgAnnouncementDeleted)
}

// ListForClub handles GET /clubs/{id}/announcements
func (h *AnnouncementHandler) ListForClub(w http.ResponseWriter, r *http.Request, p Params) {
	announcements, err := h.svc.ListForClub(r.Context(), p.ID("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusOK, "announcements", announcements)
}

// CreateForClub handles POST /clubs/{id}/announcements
func (h *AnnouncementHandler) CreateForClub(w http.ResponseWriter, r *http.Request, p Params) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	announcement, err := h.svc.CreateForClub(r.Context(), p.ID("id"), body)
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusCreated, "announcement", announcement)
}

// DeleteForClub handles DELETE /clubs/{id}/announcements/{aid}
func (h *AnnouncementHandler) DeleteForClub(w http.ResponseWriter, r *http.Request, p Params) {
	if err := h.svc.DeleteForClub(r.Context(), p.ID("id"), p.ID("aid")); err != nil {
		handleError(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, msgAnnouncementDeleted)
}
