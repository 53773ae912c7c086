package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// InternalErrorMessage is the only message a 500 response ever carries.
const InternalErrorMessage = "Internal server error"

// APIError is the error envelope returned by every endpoint: {"error": "..."}
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// WriteJSON writes the error envelope as JSON response
func (e *APIError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// Common error constructors

func NewValidationError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

func NewUnauthorizedError(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: message}
}

func NewNotFoundError(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: message}
}

func NewConflictError(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Message: message}
}

func NewRateLimitError() *APIError {
	return &APIError{Status: http.StatusTooManyRequests, Message: "Too many requests"}
}

// NewInternalError never carries detail; the cause belongs in the logs.
func NewInternalError() *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: InternalErrorMessage}
}
