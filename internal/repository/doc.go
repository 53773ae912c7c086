// Package repository implements the data access layer for the ClubHub API.
//
// The repository package contains all database operations against Postgres.
// Each repository struct handles CRUD operations for a specific domain entity.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, GetByID, Update, Delete, etc.)
//   - SQL uses positional parameters ($1, $2, ...) only
//   - Rows are parsed and mapped to model structs with the get* helpers
//
// # Absence and Errors
//
// Lookups (GetByID, GetByEmail) return nil, nil for a missing record.
// Update, Delete and Remove return database.ErrNotFound when no row matched.
// Constraint violations pass through as *database.ConstraintError so the
// service layer can map them to domain errors.
//
// # Partial Updates
//
// Update statements use COALESCE($n, column), so a nil field in the
// model.XxxUpdate leaves the column unchanged.
//
// # Example Usage
//
//	repo := NewClubRepository(db)
//	club, err := repo.GetByID(ctx, 42)
//	if err != nil {
//	    return err
//	}
//	if club == nil {
//	    // Handle not found
//	}
package repository
