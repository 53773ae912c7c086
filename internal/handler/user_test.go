package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/clubhub/api/internal/testing/fixtures"
)

func TestUser_ListHidesCredentials(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.f.CreateUser(t)
	api.f.CreateUser(t)

	rr := api.do(t, http.MethodGet, "/users", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	users := list(t, decode(t, rr), "users")
	require.Len(t, users, 2)
	for _, u := range users {
		keys := make([]string, 0, 4)
		for k := range u.(map[string]any) {
			keys = append(keys, k)
		}
		assert.ElementsMatch(t, []string{"id", "email", "role", "createdAt"}, keys)
	}
	assert.NotContains(t, rr.Body.String(), "$2a$")
}

func TestUser_GetIncludesClubs(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	user := api.f.CreateUser(t)
	club := api.f.CreateClub(t, fixtures.WithName("Robotics"))
	api.f.Join(t, club, user)

	rr := api.do(t, http.MethodGet, "/users/"+itoa(user.ID), nil)

	require.Equal(t, http.StatusOK, rr.Code)
	got := object(t, decode(t, rr), "user")
	assert.Equal(t, user.Email, got["email"])
	assert.Equal(t, []any{map[string]any{"id": float64(club.ID), "name": "Robotics"}}, got["clubs"])

	requireError(t, api.do(t, http.MethodGet, "/users/999", nil), http.StatusNotFound, "User not found")
}

func TestUser_UpdateRole(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	user := api.f.CreateUser(t)
	path := "/users/" + itoa(user.ID)

	requireError(t, api.do(t, http.MethodPut, path, map[string]any{"role": "Owner"}), http.StatusBadRequest, "Invalid role")
	requireMessage(t, api.do(t, http.MethodPut, path, map[string]any{"role": "Leader"}), "User updated successfully")

	got := object(t, decode(t, api.do(t, http.MethodGet, path, nil)), "user")
	assert.Equal(t, "Leader", got["role"])
	assert.Equal(t, user.Email, got["email"])
}

func TestUser_UpdateEmailAndPassword(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	user := api.f.CreateUser(t)
	taken := api.f.CreateUser(t)
	path := "/users/" + itoa(user.ID)

	requireError(t, api.do(t, http.MethodPut, path, map[string]any{"email": taken.Email}), http.StatusConflict, "User already exists")
	requireError(t, api.do(t, http.MethodPut, path, map[string]any{"email": "broken"}), http.StatusBadRequest, "Invalid email format")

	requireMessage(t, api.do(t, http.MethodPut, path, map[string]any{"email": "New@ClubHub.test", "password": "s3cret"}), "User updated successfully")

	rr := api.do(t, http.MethodPost, "/auth/login", map[string]any{"email": "new@clubhub.test", "password": "s3cret"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = api.do(t, http.MethodPost, "/auth/login", map[string]any{"email": "new@clubhub.test", "password": fixtures.DefaultPassword})
	requireError(t, rr, http.StatusUnauthorized, "Invalid credentials")
}

func TestUser_UpdateMissing(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	requireError(t, api.do(t, http.MethodPut, "/users/999", map[string]any{"role": "Admin"}), http.StatusNotFound, "User not found")
}

func TestUser_DeleteClearsReferences(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	user := api.f.CreateUser(t)
	club := api.f.CreateClub(t, fixtures.WithAdmin(user.ID), fixtures.WithLeader(user.ID))
	api.f.Join(t, club, user)
	path := "/users/" + itoa(user.ID)

	requireMessage(t, api.do(t, http.MethodDelete, path, nil), "User deleted successfully")
	requireError(t, api.do(t, http.MethodDelete, path, nil), http.StatusNotFound, "User not found")

	got := object(t, decode(t, api.do(t, http.MethodGet, "/clubs/"+itoa(club.ID), nil)), "club")
	assert.Nil(t, got["adminId"])
	assert.Nil(t, got["leaderId"])
	assert.Equal(t, []any{}, got["members"])
}
