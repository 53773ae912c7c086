package repository

import (
	"context"
	"fmt"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
)

const userColumns = `id, email, password_hash, role, created_at`

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and fills in its ID and creation time
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	role := user.Role
	if role == "" {
		role = model.UserRoleMember
	}

	row, err := r.db.QueryOne(ctx,
		`INSERT INTO users (email, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`,
		user.Email, user.PasswordHash, string(role))
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	user.ID = getInt64(row, "id")
	user.Role = role
	user.CreatedAt = getTime(row, "created_at")
	return nil
}

// GetByID retrieves a user by ID, or nil when absent
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := r.db.QueryOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return parseUser(row), nil
}

// GetByEmail retrieves a user by email, or nil when absent
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := r.db.QueryOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return parseUser(row), nil
}

// List returns every user ordered by ID
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, parseUser(row))
	}
	return users, nil
}

// Update applies the non-nil fields of upd
func (r *UserRepository) Update(ctx context.Context, id int64, upd model.UserUpdate) error {
	var role *string
	if upd.Role != nil {
		s := string(*upd.Role)
		role = &s
	}

	return affectedOrNotFound(r.db.Execute(ctx, `
		UPDATE users SET
			email = COALESCE($2, email),
			password_hash = COALESCE($3, password_hash),
			role = COALESCE($4, role)
		WHERE id = $1`,
		id, upd.Email, upd.PasswordHash, role))
}

// Delete removes a user; memberships cascade and club references are cleared
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return affectedOrNotFound(r.db.Execute(ctx, `DELETE FROM users WHERE id = $1`, id))
}

func parseUser(row database.Row) *model.User {
	return &model.User{
		ID:           getInt64(row, "id"),
		Email:        getString(row, "email"),
		PasswordHash: getString(row, "password_hash"),
		Role:         model.UserRole(getString(row, "role")),
		CreatedAt:    getTime(row, "created_at"),
	}
}
