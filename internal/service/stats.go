package service

import (
	"context"

	"github.com/forgo/clubhub/api/internal/model"
)

// StatsRepository defines the interface for platform totals
type StatsRepository interface {
	Get(ctx context.Context) (*model.Stats, error)
}

// StatsService reports platform totals
type StatsService struct {
	statsRepo StatsRepository
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// Get returns the current totals
func (s *StatsService) Get(ctx context.Context) (*model.Stats, error) {
	return s.statsRepo.Get(ctx)
}
