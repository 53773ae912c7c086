package handler

import (
	"net/http"

	"github.com/forgo/clubhub/api/internal/service"
)

// ClubHandler handles club HTTP requests
type ClubHandler struct {
	svc *service.ClubService
}

// NewClubHandler creates a new club handler
func NewClubHandler(svc *service.ClubService) *ClubHandler {
	return &ClubHandler{svc: svc}
}

// List handles GET /clubs
func (h *ClubHandler) List(w http.ResponseWriter, r *http.Request, _ Params) {
	clubs, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusOK, "clubs", clubs)
}

// Get handles GET /clubs/{id}
func (h *ClubHandler) Get(w http.ResponseWriter, r *http.Request, p Params) {
	club, err := h.svc.Get(r.Context(), p.ID("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusOK, "club", club)
}

// Create handles POST /clubs
func (h *ClubHandler) Create(w http.ResponseWriter, r *http.Request, _ Params) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	club, err := h.svc.Create(r.Context(), body)
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusCreated, "club", club)
}

// Update handles PUT /clubs/{id}
func (h *ClubHandler) Update(w http.ResponseWriter, r *http.Request, p Params) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	if err := h.svc.Update(r.Context(), p.ID("id"), body); err != nil {
		handleError(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Club updated successfully")
}

// Delete handles DELETE /clubs/{id}
func (h *ClubHandler) Delete(w http.ResponseWriter, r *http.Request, p Params) {
	if err := h.svc.Delete(r.Context(), p.ID("id")); err != nil {
		handleError(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Club deleted successfully")
}
