package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
	"github.com/forgo/clubhub/api/internal/service"
	"github.com/forgo/clubhub/api/internal/validate"
)

func TestMapServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", &validate.Error{Field: "text", Message: "Announcement text required"}, http.StatusBadRequest, "Announcement text required"},
		{"wrapped validation", fmt.Errorf("create: %w", &validate.Error{Message: "User ID required"}), http.StatusBadRequest, "User ID required"},
		{"invalid email", service.ErrInvalidEmail, http.StatusBadRequest, "Invalid email format"},
		{"password too long", service.ErrPasswordTooLong, http.StatusBadRequest, "Password must be at most 72 bytes"},
		{"no update fields", service.ErrNoUpdateFields, http.StatusBadRequest, "At least one field required"},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"club not found", service.ErrClubNotFound, http.StatusNotFound, "Club not found"},
		{"event not found", service.ErrEventNotFound, http.StatusNotFound, "Event not found"},
		{"not member", service.ErrNotMember, http.StatusNotFound, "Not a member of this club"},
		{"user exists", service.ErrUserExists, http.StatusConflict, "User already exists"},
		{"already member", fmt.Errorf("join: %w", service.ErrAlreadyMember), http.StatusConflict, "Already a member of this club"},
		{"storage failure", fmt.Errorf("%w: timeout", database.ErrConnection), http.StatusInternalServerError, model.InternalErrorMessage},
		{"cancelled", context.Canceled, http.StatusInternalServerError, model.InternalErrorMessage},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, model.InternalErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MapServiceError(tt.err)
			if got.Status != tt.status || got.Message != tt.msg {
				t.Errorf("MapServiceError(%v) = %d %q, want %d %q", tt.err, got.Status, got.Message, tt.status, tt.msg)
			}
		})
	}
}

func TestMapServiceError_Nil(t *testing.T) {
	t.Parallel()

	if got := MapServiceError(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
