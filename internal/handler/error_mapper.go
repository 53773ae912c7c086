package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/forgo/clubhub/api/internal/middleware"
	"github.com/forgo/clubhub/api/internal/model"
	"github.com/forgo/clubhub/api/internal/service"
	"github.com/forgo/clubhub/api/internal/validate"
)

// MapServiceError converts a service error to an APIError.
// Anything it does not recognize becomes a 500 with a fixed message.
func MapServiceError(err error) *model.APIError {
	if err == nil {
		return nil
	}

	var verr *validate.Error
	if errors.As(err, &verr) {
		return model.NewValidationError(verr.Message)
	}

	switch {
	// ===== Validation Errors → 400 =====
	case errors.Is(err, service.ErrInvalidEmail):
		return model.NewValidationError("Invalid email format")
	case errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError("Password must be at most 72 bytes")
	case errors.Is(err, service.ErrNoUpdateFields):
		return model.NewValidationError("At least one field required")

	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError("Invalid credentials")

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("User not found")
	case errors.Is(err, service.ErrClubNotFound):
		return model.NewNotFoundError("Club not found")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("Event not found")
	case errors.Is(err, service.ErrNotMember):
		return model.NewNotFoundError("Not a member of this club")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrUserExists):
		return model.NewConflictError("User already exists")
	case errors.Is(err, service.ErrAlreadyMember):
		return model.NewConflictError("Already a member of this club")

	default:
		return model.NewInternalError()
	}
}

// handleError writes the mapped response. Unmapped errors are logged
// with the request id since their cause never reaches the client.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := MapServiceError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
	}
	WriteError(w, apiErr)
}
