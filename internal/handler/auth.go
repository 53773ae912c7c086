package handler

import (
	"net/http"

	"github.com/forgo/clubhub/api/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ Params) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	user, err := h.authService.Login(r.Context(), body)
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusOK, "user", user)
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request, _ Params) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	user, err := h.authService.Register(r.Context(), body)
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteData(w, http.StatusCreated, "user", user)
}
