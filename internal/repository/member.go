package repository

import (
	"context"
	"fmt"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
)

// MemberRepository handles club membership data access
type MemberRepository struct {
	db database.Database
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db database.Database) *MemberRepository {
	return &MemberRepository{db: db}
}

// Add creates a membership. A repeated pair fails with database.ErrDuplicate
// and a missing club or user with database.ErrForeignKey.
func (r *MemberRepository) Add(ctx context.Context, clubID, userID int64) (*model.Membership, error) {
	row, err := r.db.QueryOne(ctx,
		`INSERT INTO club_members (club_id, user_id) VALUES ($1, $2) RETURNING id, joined_at`,
		clubID, userID)
	if err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}

	return &model.Membership{
		ID:       getInt64(row, "id"),
		ClubID:   clubID,
		UserID:   userID,
		JoinedAt: getTime(row, "joined_at"),
	}, nil
}

// Remove deletes a membership, or returns database.ErrNotFound
func (r *MemberRepository) Remove(ctx context.Context, clubID, userID int64) error {
	return affectedOrNotFound(r.db.Execute(ctx,
		`DELETE FROM club_members WHERE club_id = $1 AND user_id = $2`, clubID, userID))
}

// IsMember checks if a user belongs to a club
func (r *MemberRepository) IsMember(ctx context.Context, clubID, userID int64) (bool, error) {
	_, err := r.db.QueryOne(ctx,
		`SELECT id FROM club_members WHERE club_id = $1 AND user_id = $2`, clubID, userID)
	if err != nil {
		return false, notFoundAsNil(err)
	}
	return true, nil
}

// ListUserIDs returns the member user IDs of a club in join order
func (r *MemberRepository) ListUserIDs(ctx context.Context, clubID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM club_members WHERE club_id = $1 ORDER BY id`, clubID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, getInt64(row, "user_id"))
	}
	return ids, nil
}

// ListClubIDs returns the IDs of the clubs a user belongs to
func (r *MemberRepository) ListClubIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT club_id FROM club_members WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, getInt64(row, "club_id"))
	}
	return ids, nil
}

// ListClubs returns the clubs a user belongs to
func (r *MemberRepository) ListClubs(ctx context.Context, userID int64) ([]model.ClubRef, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name
		FROM clubs c
		JOIN club_members cm ON cm.club_id = c.id
		WHERE cm.user_id = $1
		ORDER BY cm.id`, userID)
	if err != nil {
		return nil, err
	}

	clubs := make([]model.ClubRef, 0, len(rows))
	for _, row := range rows {
		clubs = append(clubs, model.ClubRef{ID: getInt64(row, "id"), Name: getString(row, "name")})
	}
	return clubs, nil
}
