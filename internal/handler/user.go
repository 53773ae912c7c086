package handler

import (
	"net/http"

	"github.com/forgo/clubhub/api/internal/service"
)

// UserHandler handles user administration requests
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List handles GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request, _ Params) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusOK, "users", users)
}

// Get handles GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request, p Params) {
	user, err := h.svc.Get(r.Context(), p.ID("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusOK, "user", user)
}

// Update handles PUT /users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request, p Params) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	if err := h.svc.Update(r.Context(), p.ID("id"), body); err != nil {
		handleError(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, "User updated successfully")
}

// Delete handles DELETE /users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request, p Params) {
	if err := h.svc.Delete(r.Context(), p.ID("id")); err != nil {
		handleError(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, "User deleted successfully")
}
