package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/clubhub/api/internal/testing/fixtures"
	"github.com/forgo/clubhub/api/internal/testing/memstore"
	"github.com/forgo/clubhub/api/internal/validate"
)

// testEnv wires every service to one in-memory store
type testEnv struct {
	store         *memstore.Store
	f             *fixtures.Factory
	auth          *AuthService
	clubs         *ClubService
	members       *MembershipService
	announcements *AnnouncementService
	events        *EventService
	users         *UserService
	stats         *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memstore.New()
	return &testEnv{
		store: store,
		f: fixtures.New(fixtures.Repos{
			Users:         store.Users,
			Clubs:         store.Clubs,
			Members:       store.Members,
			Announcements: store.Announcements,
			Events:        store.Events,
		}),
		auth: NewAuthService(AuthServiceConfig{
			UserRepo:   store.Users,
			MemberRepo: store.Members,
			BcryptCost: bcrypt.MinCost,
		}),
		clubs: NewClubService(ClubServiceConfig{
			ClubRepo:         store.Clubs,
			MemberRepo:       store.Members,
			UserRepo:         store.Users,
			AnnouncementRepo: store.Announcements,
			EventRepo:        store.Events,
		}),
		members:       NewMembershipService(store.Clubs, store.Users, store.Members),
		announcements: NewAnnouncementService(store.Announcements, store.Clubs),
		events:        NewEventService(store.Events, store.Clubs),
		users: NewUserService(UserServiceConfig{
			UserRepo:   store.Users,
			MemberRepo: store.Members,
			BcryptCost: bcrypt.MinCost,
		}),
		stats: NewStatsService(store.Stats),
	}
}

// requireValidation fails unless err is a *validate.Error with msg
func requireValidation(t *testing.T, err error, msg string) {
	t.Helper()

	var verr *validate.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error %q, got %v", msg, err)
	}
	if verr.Message != msg {
		t.Fatalf("expected validation message %q, got %q", msg, verr.Message)
	}
}

// requireErr fails unless errors.Is(err, target)
func requireErr(t *testing.T, err, target error) {
	t.Helper()

	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}

func requireNoErr(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func bg() context.Context {
	return context.Background()
}
