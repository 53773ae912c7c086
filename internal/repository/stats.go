package repository

import (
	"context"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
)

// StatsRepository computes platform totals
type StatsRepository struct {
	db database.Database
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db database.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

// Get counts clubs, users, events and memberships in one round trip
func (r *StatsRepository) Get(ctx context.Context) (*model.Stats, error) {
	row, err := r.db.QueryOne(ctx, `
		SELECT
			(SELECT COUNT(*) FROM clubs)        AS total_clubs,
			(SELECT COUNT(*) FROM users)        AS total_users,
			(SELECT COUNT(*) FROM events)       AS total_events,
			(SELECT COUNT(*) FROM club_members) AS total_memberships`)
	if err != nil {
		return nil, err
	}

	return &model.Stats{
		TotalClubs:       getInt64(row, "total_clubs"),
		TotalUsers:       getInt64(row, "total_users"),
		TotalEvents:      getInt64(row, "total_events"),
		TotalMemberships: getInt64(row, "total_memberships"),
	}, nil
}
