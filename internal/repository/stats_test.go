package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/clubhub/api/internal/model"
	"github.com/forgo/clubhub/api/internal/testing/fixtures"
)

func TestStatsRepository_Get(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Context(t)

	empty, err := r.stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, &model.Stats{}, empty)

	ada := r.f.CreateUser(t)
	bob := r.f.CreateUser(t)
	club := r.f.CreateClub(t)
	r.f.Join(t, club, ada)
	r.f.Join(t, club, bob)
	r.f.CreateEvent(t, fixtures.ForClub(club.ID))

	got, err := r.stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, &model.Stats{TotalClubs: 1, TotalUsers: 2, TotalEvents: 1, TotalMemberships: 2}, got)
}
