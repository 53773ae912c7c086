package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/clubhub/api/internal/testing/fixtures"
)

func TestStats_Counts(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	alice := api.f.CreateUser(t)
	bob := api.f.CreateUser(t)
	chess := api.f.CreateClub(t)
	api.f.CreateClub(t)
	api.f.Join(t, chess, alice)
	api.f.Join(t, chess, bob)
	api.f.CreateEvent(t, fixtures.ForClub(chess.ID))

	rr := api.do(t, http.MethodGet, "/stats", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{
		"totalClubs":       float64(2),
		"totalUsers":       float64(2),
		"totalEvents":      float64(1),
		"totalMemberships": float64(2),
	}, object(t, decode(t, rr), "stats"))
}

func TestHealth(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	for _, path := range []string{"/", "/health", "/api/health"} {
		rr := api.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rr.Code, path)

		body := decode(t, rr)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "ClubHub API is running", body["message"])
		assert.Equal(t, "connected", body["database"])
		_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
		assert.NoError(t, err)
	}
}

func TestHealth_DegradedWhenStoreUnreachable(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.store.SetPingError(errors.New("connection refused"))

	rr := api.do(t, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "disconnected", body["database"])
	assert.NotContains(t, rr.Body.String(), "refused")
}
