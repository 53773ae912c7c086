package repository

import (
	"context"
	"fmt"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
)

// AnnouncementRepository handles general and club announcement data access
type AnnouncementRepository struct {
	db database.Database
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db database.Database) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// CreateGeneral posts a platform-wide announcement
func (r *AnnouncementRepository) CreateGeneral(ctx context.Context, text string) (*model.Announcement, error) {
	row, err := r.db.QueryOne(ctx,
		`INSERT INTO general_announcements (text) VALUES ($1) RETURNING id, text, created_at`, text)
	if err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	return parseAnnouncement(row, nil), nil
}

// ListGeneral returns general announcements, newest first
func (r *AnnouncementRepository) ListGeneral(ctx context.Context) ([]*model.Announcement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, text, created_at FROM general_announcements ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return parseAnnouncements(rows, nil), nil
}

// DeleteGeneral removes a general announcement; a missing ID is not an error
func (r *AnnouncementRepository) DeleteGeneral(ctx context.Context, id int64) error {
	_, err := r.db.Execute(ctx, `DELETE FROM general_announcements WHERE id = $1`, id)
	return err
}

// CreateForClub posts an announcement to a club
func (r *AnnouncementRepository) CreateForClub(ctx context.Context, clubID int64, text string) (*model.Announcement, error) {
	row, err := r.db.QueryOne(ctx,
		`INSERT INTO club_announcements (club_id, text) VALUES ($1, $2) RETURNING id, text, created_at`,
		clubID, text)
	if err != nil {
		return nil, fmt.Errorf("create club announcement: %w", err)
	}
	return parseAnnouncement(row, &clubID), nil
}

// ListForClub returns a club's announcements, newest first. A limit of
// zero or less returns all of them.
func (r *AnnouncementRepository) ListForClub(ctx context.Context, clubID int64, limit int) ([]*model.Announcement, error) {
	query := `SELECT id, text, created_at FROM club_announcements WHERE club_id = $1 ORDER BY created_at DESC, id DESC`
	args := []any{clubID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return parseAnnouncements(rows, &clubID), nil
}

// DeleteForClub removes the announcement matching both IDs; no match is not an error
func (r *AnnouncementRepository) DeleteForClub(ctx context.Context, clubID, id int64) error {
	_, err := r.db.Execute(ctx,
		`DELETE FROM club_announcements WHERE id = $1 AND club_id = $2`, id, clubID)
	return err
}

func parseAnnouncements(rows []database.Row, clubID *int64) []*model.Announcement {
	out := make([]*model.Announcement, 0, len(rows))
	for _, row := range rows {
		out = append(out, parseAnnouncement(row, clubID))
	}
	return out
}

func parseAnnouncement(row database.Row, clubID *int64) *model.Announcement {
	return model.NewAnnouncement(getInt64(row, "id"), clubID, getString(row, "text"), getTime(row, "created_at"))
}
