package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable. Request validation
// failures are *validate.Error values and are not listed here.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
	ErrInvalidEmail       = errors.New("invalid email format")
)

// ===== Club Errors =====
var (
	ErrClubNotFound   = errors.New("club not found")
	ErrNoUpdateFields = errors.New("no fields to update")
)

// ===== Membership Errors =====
var (
	ErrAlreadyMember = errors.New("already a member of this club")
	ErrNotMember     = errors.New("not a member of this club")
)

// ===== Event Errors =====
var (
	ErrEventNotFound = errors.New("event not found")
)
