// Package database provides the data access layer for the ClubHub API.
//
// The Database interface abstracts the relational store so repositories
// can be exercised against Postgres in production and against fakes in
// unit tests.
//
// # Interface Design
//
// The Database interface provides three query methods:
//   - Query: Returns every row of a SELECT (or RETURNING) statement
//   - QueryOne: Returns the first row, or ErrNotFound when there is none
//   - Execute: Runs a mutation and reports the number of affected rows
//
// Rows come back as Row values keyed by column name. Callers alias
// columns in SQL so the keys are stable.
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrForeignKey: Foreign key violation
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//
// Constraint violations arrive as *ConstraintError, which carries the
// constraint name and matches ErrDuplicate or ErrForeignKey:
//
//	if errors.Is(err, database.ErrDuplicate) {
//	    // Handle duplicate email
//	}
//
// # Usage Example
//
//	db := database.NewPostgres(cfg)
//	if err := db.Connect(ctx); err != nil { ... }
//	defer db.Close()
//
//	row, err := db.QueryOne(ctx, "SELECT id, email FROM users WHERE id = $1", userID)
//
// Schema changes live in the migrations subpackage and are applied with
// bun's migrator, either at server start or through cmd/migrate.
package database
