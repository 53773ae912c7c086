package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/clubhub/api/internal/middleware"
	"github.com/forgo/clubhub/api/internal/service"
	"github.com/forgo/clubhub/api/internal/testing/fixtures"
	"github.com/forgo/clubhub/api/internal/testing/memstore"
)

// testAPI serves the full route table over one in-memory store
type testAPI struct {
	store  *memstore.Store
	f      *fixtures.Factory
	router http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	return newTestAPIWithOptions(t, RouterOptions{
		Middlewares: []middleware.Middleware{middleware.RequestID, middleware.Recovery},
	})
}

func newTestAPIWithOptions(t *testing.T, opts RouterOptions) *testAPI {
	t.Helper()

	store := memstore.New()
	return &testAPI{
		store: store,
		f: fixtures.New(fixtures.Repos{
			Users:         store.Users,
			Clubs:         store.Clubs,
			Members:       store.Members,
			Announcements: store.Announcements,
			Events:        store.Events,
		}),
		router: NewRouter(newHandlers(store), opts),
	}
}

func newHandlers(store *memstore.Store) *Handlers {
	return &Handlers{
		Auth: NewAuthHandler(service.NewAuthService(service.AuthServiceConfig{
			UserRepo:   store.Users,
			MemberRepo: store.Members,
			BcryptCost: bcrypt.MinCost,
		})),
		Clubs: NewClubHandler(service.NewClubService(service.ClubServiceConfig{
			ClubRepo:         store.Clubs,
			MemberRepo:       store.Members,
			UserRepo:         store.Users,
			AnnouncementRepo: store.Announcements,
			EventRepo:        store.Events,
		})),
		Memberships:   NewMembershipHandler(service.NewMembershipService(store.Clubs, store.Users, store.Members)),
		Announcements: NewAnnouncementHandler(service.NewAnnouncementService(store.Announcements, store.Clubs)),
		Events:        NewEventHandler(service.NewEventService(store.Events, store.Clubs)),
		Users: NewUserHandler(service.NewUserService(service.UserServiceConfig{
			UserRepo:   store.Users,
			MemberRepo: store.Members,
			BcryptCost: bcrypt.MinCost,
		})),
		Stats:  NewStatsHandler(service.NewStatsService(store.Stats)),
		Health: NewHealthHandler(store, 0),
	}
}

// do sends a request. A string body is sent verbatim, anything else is
// encoded as JSON.
func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// decode parses a JSON object response
func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "body: %s", rr.Body.String())
	return out
}

// object returns body[key] as a JSON object
func object(t *testing.T, body map[string]any, key string) map[string]any {
	t.Helper()

	v, ok := body[key].(map[string]any)
	require.True(t, ok, "expected %q to be an object in %v", key, body)
	return v
}

// list returns body[key] as a JSON array
func list(t *testing.T, body map[string]any, key string) []any {
	t.Helper()

	v, ok := body[key].([]any)
	require.True(t, ok, "expected %q to be an array in %v", key, body)
	return v
}

// requireError asserts status and the {"error": msg} envelope
func requireError(t *testing.T, rr *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()

	require.Equal(t, status, rr.Code, "body: %s", rr.Body.String())
	require.Equal(t, map[string]any{"error": msg}, decode(t, rr))
}

// requireMessage asserts a 200 {"message": msg} envelope
func requireMessage(t *testing.T, rr *httptest.ResponseRecorder, msg string) {
	t.Helper()

	require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())
	require.Equal(t, map[string]any{"message": msg}, decode(t, rr))
}

// id converts a JSON number to int64
func id(t *testing.T, v any) int64 {
	t.Helper()

	f, ok := v.(float64)
	require.True(t, ok, "expected a number, got %T", v)
	return int64(f)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
