package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
	"github.com/forgo/clubhub/api/internal/testing/fixtures"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Context(t)

	user := &model.User{Email: "ada@example.com", PasswordHash: "hash"}
	require.NoError(t, r.users.Create(ctx, user))
	assert.Positive(t, user.ID)
	assert.Equal(t, model.UserRoleMember, user.Role)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := r.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "ada@example.com", byID.Email)
	assert.Equal(t, "hash", byID.PasswordHash)

	byEmail, err := r.users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepository_GetMissingIsNil(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Context(t)

	user, err := r.users.GetByID(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = r.users.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Context(t)

	require.NoError(t, r.users.Create(ctx, &model.User{Email: "dup@example.com", PasswordHash: "a"}))
	err := r.users.Create(ctx, &model.User{Email: "dup@example.com", PasswordHash: "b"})

	require.ErrorIs(t, err, database.ErrDuplicate)
	assert.Equal(t, "users_email_key", database.ConstraintName(err))
}

func TestUserRepository_ListOrderedByID(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Context(t)

	first := r.f.CreateUser(t)
	second := r.f.CreateUser(t, fixtures.WithRole(model.UserRoleLeader))

	users, err := r.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, first.ID, users[0].ID)
	assert.Equal(t, second.ID, users[1].ID)
	assert.Equal(t, model.UserRoleLeader, users[1].Role)
}

func TestUserRepository_UpdatePartial(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Context(t)

	user := r.f.CreateUser(t)
	role := model.UserRoleAdmin
	require.NoError(t, r.users.Update(ctx, user.ID, model.UserUpdate{Role: &role}))

	got, err := r.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleAdmin, got.Role)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)

	err = r.users.Update(ctx, 9999, model.UserUpdate{Role: &role})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestUserRepository_DeleteClearsReferences(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Context(t)

	user := r.f.CreateUser(t)
	club := r.f.CreateClub(t, fixtures.WithAdmin(user.ID), fixtures.WithLeader(user.ID))
	r.f.Join(t, club, user)

	require.NoError(t, r.users.Delete(ctx, user.ID))
	assert.ErrorIs(t, r.users.Delete(ctx, user.ID), database.ErrNotFound)

	got, err := r.clubs.GetByID(ctx, club.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.AdminID)
	assert.Nil(t, got.LeaderID)

	members, err := r.members.ListUserIDs(ctx, club.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}
