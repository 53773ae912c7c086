package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Standard errors for database operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (e.g., duplicate email).
	ErrDuplicate = errors.New("duplicate record")

	// ErrForeignKey indicates a write referenced a row that does not exist.
	ErrForeignKey = errors.New("referenced record does not exist")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")
)

// Row is a single result row keyed by column name.
type Row map[string]any

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns every result row
	Query(ctx context.Context, query string, args ...any) ([]Row, error)

	// QueryOne executes a query and returns the first row, or ErrNotFound
	QueryOne(ctx context.Context, query string, args ...any) (Row, error)

	// Execute runs a statement and returns the number of affected rows
	Execute(ctx context.Context, query string, args ...any) (int64, error)
}

// Config holds database configuration
type Config struct {
	URL            string
	MaxConns       int32
	MinConns       int32
	ConnectTimeout time.Duration
	// TracerProvider creates the spans around every statement. The global
	// provider is used when nil.
	TracerProvider trace.TracerProvider
}

// ConstraintError reports a constraint violation raised by the store.
// It matches ErrDuplicate or ErrForeignKey through errors.Is.
type ConstraintError struct {
	Kind       error
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Constraint == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v (%s)", e.Kind, e.Constraint)
}

func (e *ConstraintError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ConstraintName returns the violated constraint carried by err, if any.
func ConstraintName(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}
