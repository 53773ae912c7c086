// Package service implements the business logic layer for the ClubHub API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of repository operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts repositories or a config struct
//   - Write operations take the decoded JSON body and run it through the validate package
//   - Errors are returned as sentinel errors or *validate.Error values
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - In-memory fakes for unit tests (internal/testing/memstore)
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Consistency
//
// There are no transactions. Each operation checks its references first
// (club exists, user exists, email free) and then writes. The database
// constraints back those checks, and their violations are mapped to the
// same domain errors so a lost race reports the same error as the check:
//
//	if errors.Is(err, database.ErrDuplicate) {
//	    return ErrAlreadyMember
//	}
//
// # Error Handling
//
// Services return domain-specific errors defined in errors.go:
//
//	var (
//	    ErrClubNotFound  = errors.New("club not found")
//	    ErrAlreadyMember = errors.New("already a member of this club")
//	)
//
// Handlers map these to HTTP responses using handler.MapServiceError.
package service
