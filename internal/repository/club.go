package repository

import (
	"context"
	"fmt"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
)

const clubColumns = `id, name, description, image, admin_id, leader_id, created_at`

// ClubRepository handles club data access
type ClubRepository struct {
	db database.Database
}

// NewClubRepository creates a new club repository
func NewClubRepository(db database.Database) *ClubRepository {
	return &ClubRepository{db: db}
}

// Create inserts a club and fills in its ID and creation time
func (r *ClubRepository) Create(ctx context.Context, club *model.Club) error {
	row, err := r.db.QueryOne(ctx, `
		INSERT INTO clubs (name, description, image, admin_id, leader_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		club.Name, club.Description, club.Image, club.AdminID, club.LeaderID)
	if err != nil {
		return fmt.Errorf("create club: %w", err)
	}

	club.ID = getInt64(row, "id")
	club.CreatedAt = getTime(row, "created_at")
	return nil
}

// GetByID retrieves a club by ID, or nil when absent
func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*model.Club, error) {
	row, err := r.db.QueryOne(ctx, `SELECT `+clubColumns+` FROM clubs WHERE id = $1`, id)
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return parseClub(row), nil
}

// List returns every club ordered by ID
func (r *ClubRepository) List(ctx context.Context) ([]*model.Club, error) {
	rows, err := r.db.Query(ctx, `SELECT `+clubColumns+` FROM clubs ORDER BY id`)
	if err != nil {
		return nil, err
	}

	clubs := make([]*model.Club, 0, len(rows))
	for _, row := range rows {
		clubs = append(clubs, parseClub(row))
	}
	return clubs, nil
}

// Update applies the non-nil fields of upd
func (r *ClubRepository) Update(ctx context.Context, id int64, upd model.ClubUpdate) error {
	return affectedOrNotFound(r.db.Execute(ctx, `
		UPDATE clubs SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			image = COALESCE($4, image),
			admin_id = COALESCE($5, admin_id),
			leader_id = COALESCE($6, leader_id)
		WHERE id = $1`,
		id, upd.Name, upd.Description, upd.Image, upd.AdminID, upd.LeaderID))
}

// Delete removes a club; memberships, announcements and events cascade
func (r *ClubRepository) Delete(ctx context.Context, id int64) error {
	return affectedOrNotFound(r.db.Execute(ctx, `DELETE FROM clubs WHERE id = $1`, id))
}

func parseClub(row database.Row) *model.Club {
	return &model.Club{
		ID:          getInt64(row, "id"),
		Name:        getString(row, "name"),
		Description: getString(row, "description"),
		Image:       getString(row, "image"),
		AdminID:     getInt64Ptr(row, "admin_id"),
		LeaderID:    getInt64Ptr(row, "leader_id"),
		CreatedAt:   getTime(row, "created_at"),
	}
}
