// Package fixtures provides test data factories backed by gofakeit.
//
// Each factory method creates entities with generated defaults while
// allowing customization via option functions. The factory writes through
// repository interfaces, so the same fixtures serve the in-memory store and
// the Postgres repositories.
//
// Usage:
//
//	store := memstore.New()
//	f := fixtures.New(fixtures.Repos{Users: store.Users, Clubs: store.Clubs, ...})
//	user := f.CreateUser(t)
//	club := f.CreateClub(t, fixtures.WithAdmin(user.ID))
//	f.Join(t, club, user)
package fixtures

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/clubhub/api/internal/model"
)

// DefaultPassword is the plaintext password of every fixture user.
const DefaultPassword = "testpass123"

// Repos are the write paths the factory needs.
type Repos struct {
	Users interface {
		Create(ctx context.Context, user *model.User) error
	}
	Clubs interface {
		Create(ctx context.Context, club *model.Club) error
	}
	Members interface {
		Add(ctx context.Context, clubID, userID int64) (*model.Membership, error)
	}
	Announcements interface {
		CreateGeneral(ctx context.Context, text string) (*model.Announcement, error)
		CreateForClub(ctx context.Context, clubID int64, text string) (*model.Announcement, error)
	}
	Events interface {
		Create(ctx context.Context, event *model.Event) error
	}
}

// Factory creates test entities
type Factory struct {
	repos Repos

	mu    sync.Mutex
	faker *gofakeit.Faker
}

var (
	seq      atomic.Int64
	hashOnce sync.Once
	hash     string
)

// New creates a new fixture factory with a fixed seed for repeatable data
func New(repos Repos) *Factory {
	return &Factory{repos: repos, faker: gofakeit.New(42)}
}

// ctx returns a context with timeout
func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// passwordHash hashes DefaultPassword once at the cheapest cost
func passwordHash(t *testing.T) string {
	hashOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("fixtures: failed to hash password: %v", err)
		}
		hash = string(h)
	})
	return hash
}

func (f *Factory) fake(fn func(*gofakeit.Faker) string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f.faker)
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Email string
	Role  model.UserRole
}

// WithEmail sets the user's email
func WithEmail(email string) func(*UserOpts) {
	return func(o *UserOpts) { o.Email = email }
}

// WithRole sets the user's role
func WithRole(role model.UserRole) func(*UserOpts) {
	return func(o *UserOpts) { o.Role = role }
}

// CreateUser creates a user whose password is DefaultPassword
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	o := &UserOpts{
		Email: fmt.Sprintf("u%d.%s", seq.Add(1), strings.ToLower(f.fake((*gofakeit.Faker).Email))),
		Role:  model.UserRoleMember,
	}
	for _, fn := range opts {
		fn(o)
	}

	user := &model.User{Email: o.Email, PasswordHash: passwordHash(t), Role: o.Role}
	if err := f.repos.Users.Create(ctx(t), user); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}
	return user
}

// ============================================================================
// Club Fixtures
// ============================================================================

// ClubOpts customizes club creation
type ClubOpts struct {
	Name     string
	AdminID  *int64
	LeaderID *int64
}

// WithName sets the club's name
func WithName(name string) func(*ClubOpts) {
	return func(o *ClubOpts) { o.Name = name }
}

// WithAdmin sets the club's admin
func WithAdmin(userID int64) func(*ClubOpts) {
	return func(o *ClubOpts) { o.AdminID = &userID }
}

// WithLeader sets the club's leader
func WithLeader(userID int64) func(*ClubOpts) {
	return func(o *ClubOpts) { o.LeaderID = &userID }
}

// CreateClub creates a club with generated name, description and image
func (f *Factory) CreateClub(t *testing.T, opts ...func(*ClubOpts)) *model.Club {
	t.Helper()

	o := &ClubOpts{Name: f.fake((*gofakeit.Faker).Company) + " Club"}
	for _, fn := range opts {
		fn(o)
	}

	club := &model.Club{
		Name:        o.Name,
		Description: f.fake(func(g *gofakeit.Faker) string { return g.Sentence(8) }),
		Image:       f.fake((*gofakeit.Faker).URL),
		AdminID:     o.AdminID,
		LeaderID:    o.LeaderID,
	}
	if err := f.repos.Clubs.Create(ctx(t), club); err != nil {
		t.Fatalf("fixtures: failed to create club: %v", err)
	}
	return club
}

// Join adds user to club
func (f *Factory) Join(t *testing.T, club *model.Club, user *model.User) {
	t.Helper()

	if _, err := f.repos.Members.Add(ctx(t), club.ID, user.ID); err != nil {
		t.Fatalf("fixtures: failed to add member: %v", err)
	}
}

// ============================================================================
// Announcement Fixtures
// ============================================================================

// CreateAnnouncement posts a general announcement
func (f *Factory) CreateAnnouncement(t *testing.T) *model.Announcement {
	t.Helper()

	a, err := f.repos.Announcements.CreateGeneral(ctx(t), f.fake(func(g *gofakeit.Faker) string { return g.Sentence(6) }))
	if err != nil {
		t.Fatalf("fixtures: failed to create announcement: %v", err)
	}
	return a
}

// CreateClubAnnouncement posts an announcement to club
func (f *Factory) CreateClubAnnouncement(t *testing.T, club *model.Club) *model.Announcement {
	t.Helper()

	a, err := f.repos.Announcements.CreateForClub(ctx(t), club.ID, f.fake(func(g *gofakeit.Faker) string { return g.Sentence(6) }))
	if err != nil {
		t.Fatalf("fixtures: failed to create club announcement: %v", err)
	}
	return a
}

// ============================================================================
// Event Fixtures
// ============================================================================

// EventOpts customizes event creation
type EventOpts struct {
	Title  string
	Date   string
	ClubID *int64
}

// WithDate sets the event date
func WithDate(date string) func(*EventOpts) {
	return func(o *EventOpts) { o.Date = date }
}

// ForClub attaches the event to a club
func ForClub(clubID int64) func(*EventOpts) {
	return func(o *EventOpts) { o.ClubID = &clubID }
}

// CreateEvent creates an event, dated a month out unless overridden
func (f *Factory) CreateEvent(t *testing.T, opts ...func(*EventOpts)) *model.Event {
	t.Helper()

	o := &EventOpts{
		Title: f.fake(func(g *gofakeit.Faker) string { return g.Sentence(3) }),
		Date:  time.Now().AddDate(0, 1, 0).UTC().Format("2006-01-02"),
	}
	for _, fn := range opts {
		fn(o)
	}

	event := &model.Event{
		Title:       o.Title,
		Description: f.fake(func(g *gofakeit.Faker) string { return g.Sentence(10) }),
		Date:        o.Date,
		ClubID:      o.ClubID,
	}
	if err := f.repos.Events.Create(ctx(t), event); err != nil {
		t.Fatalf("fixtures: failed to create event: %v", err)
	}
	return event
}
