package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
)

func TestMemberRepository_AddAndList(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Context(t)

	ada := r.f.CreateUser(t)
	bob := r.f.CreateUser(t)
	chess := r.f.CreateClub(t)
	choir := r.f.CreateClub(t)

	m, err := r.members.Add(ctx, chess.ID, ada.ID)
	require.NoError(t, err)
	assert.Positive(t, m.ID)
	assert.False(t, m.JoinedAt.IsZero())

	_, err = r.members.Add(ctx, chess.ID, bob.ID)
	require.NoError(t, err)
	_, err = r.members.Add(ctx, choir.ID, ada.ID)
	require.NoError(t, err)

	userIDs, err := r.members.ListUserIDs(ctx, chess.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{ada.ID, bob.ID}, userIDs)

	clubIDs, err := r.members.ListClubIDs(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{chess.ID, choir.ID}, clubIDs)

	refs, err := r.members.ListClubs(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.ClubRef{{ID: chess.ID, Name: chess.Name}, {ID: choir.ID, Name: choir.Name}}, refs)

	ok, err := r.members.IsMember(ctx, choir.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemberRepository_Constraints(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Context(t)

	user := r.f.CreateUser(t)
	club := r.f.CreateClub(t)
	r.f.Join(t, club, user)

	_, err := r.members.Add(ctx, club.ID, user.ID)
	require.ErrorIs(t, err, database.ErrDuplicate)

	_, err = r.members.Add(ctx, club.ID, user.ID+100)
	require.ErrorIs(t, err, database.ErrForeignKey)

	_, err = r.members.Add(ctx, club.ID+100, user.ID)
	require.ErrorIs(t, err, database.ErrForeignKey)
}

func TestMemberRepository_Remove(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Context(t)

	user := r.f.CreateUser(t)
	club := r.f.CreateClub(t)
	r.f.Join(t, club, user)

	require.NoError(t, r.members.Remove(ctx, club.ID, user.ID))
	assert.ErrorIs(t, r.members.Remove(ctx, club.ID, user.ID), database.ErrNotFound)

	ok, err := r.members.IsMember(ctx, club.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = r.members.Add(ctx, club.ID, user.ID)
	assert.NoError(t, err, "rejoining after leaving")
}
