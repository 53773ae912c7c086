// Package memstore is an in-memory implementation of every repository the
// services depend on. It enforces the same unique and foreign key rules as
// the Postgres schema and reports violations with the same database errors,
// so service and handler tests observe production error paths without a
// database.
//
//	store := memstore.New()
//	clubs := service.NewClubService(service.ClubServiceConfig{
//	    ClubRepo:   store.Clubs,
//	    MemberRepo: store.Members,
//	    ...
//	})
package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
)

// Store holds all tables behind one lock.
type Store struct {
	mu      sync.RWMutex
	clock   time.Time
	seq     map[string]int64
	failErr error
	pingErr error

	users             map[int64]*model.User
	clubs             map[int64]*model.Club
	members           []*model.Membership
	general           []*model.Announcement
	clubAnnouncements []*model.Announcement
	events            map[int64]*model.Event

	Users         *Users
	Clubs         *Clubs
	Members       *Members
	Announcements *Announcements
	Events        *Events
	Stats         *Stats
}

// New returns an empty store.
func New() *Store {
	s := &Store{
		clock:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		seq:    map[string]int64{},
		users:  map[int64]*model.User{},
		clubs:  map[int64]*model.Club{},
		events: map[int64]*model.Event{},
	}
	s.Users = &Users{s: s}
	s.Clubs = &Clubs{s: s}
	s.Members = &Members{s: s}
	s.Announcements = &Announcements{s: s}
	s.Events = &Events{s: s}
	s.Stats = &Stats{s: s}
	return s
}

// Fail makes every subsequent call return err; nil restores normal behavior.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// SetPingError sets the error returned by Ping.
func (s *Store) SetPingError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pingErr = err
}

// Ping reports the configured ping error.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pingErr
}

func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// now advances a fake clock so creation order is strictly increasing.
func (s *Store) now() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) check() error {
	return s.failErr
}

func duplicate(constraint string) error {
	return &database.ConstraintError{Kind: database.ErrDuplicate, Constraint: constraint}
}

func foreignKey(constraint string) error {
	return &database.ConstraintError{Kind: database.ErrForeignKey, Constraint: constraint}
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ============================================================================
// Users
// ============================================================================

// Users implements service.UserRepository.
type Users struct{ s *Store }

// Create inserts a user, failing with database.ErrDuplicate on a taken email
func (r *Users) Create(ctx context.Context, user *model.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}

	for _, u := range s.users {
		if u.Email == user.Email {
			return duplicate("users_email_key")
		}
	}
	if user.Role == "" {
		user.Role = model.UserRoleMember
	}

	user.ID = s.nextID("users")
	user.CreatedAt = s.now()
	s.users[user.ID] = copyPtr(user)
	return nil
}

// GetByID returns a copy of the user, or nil when absent
func (r *Users) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	return copyPtr(s.users[id]), nil
}

// GetByEmail returns a copy of the user with email, or nil when absent
func (r *Users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.Email == email {
			return copyPtr(u), nil
		}
	}
	return nil, nil
}

// List returns every user ordered by ID
func (r *Users) List(ctx context.Context) ([]*model.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, copyPtr(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Update applies the non-nil fields of upd
func (r *Users) Update(ctx context.Context, id int64, upd model.UserUpdate) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}

	user, ok := s.users[id]
	if !ok {
		return database.ErrNotFound
	}
	if upd.Email != nil {
		for _, u := range s.users {
			if u.ID != id && u.Email == *upd.Email {
				return duplicate("users_email_key")
			}
		}
		user.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		user.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}
	return nil
}

// Delete removes a user with its memberships and clears club admin/leader references
func (r *Users) Delete(ctx context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}

	if _, ok := s.users[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.users, id)

	s.members = slices.DeleteFunc(s.members, func(m *model.Membership) bool { return m.UserID == id })
	for _, c := range s.clubs {
		if c.AdminID != nil && *c.AdminID == id {
			c.AdminID = nil
		}
		if c.LeaderID != nil && *c.LeaderID == id {
			c.LeaderID = nil
		}
	}
	return nil
}

// ============================================================================
// Clubs
// ============================================================================

// Clubs implements service.ClubRepository.
type Clubs struct{ s *Store }

// Create inserts a club after checking its admin and leader exist
func (r *Clubs) Create(ctx context.Context, club *model.Club) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	if err := s.checkClubRefs(club.AdminID, club.LeaderID); err != nil {
		return err
	}

	club.ID = s.nextID("clubs")
	club.CreatedAt = s.now()
	stored := *club
	stored.AdminID = copyPtr(club.AdminID)
	stored.LeaderID = copyPtr(club.LeaderID)
	s.clubs[club.ID] = &stored
	return nil
}

// GetByID returns a copy of the club, or nil when absent
func (r *Clubs) GetByID(ctx context.Context, id int64) (*model.Club, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.cloneClub(s.clubs[id]), nil
}

// List returns every club ordered by ID
func (r *Clubs) List(ctx context.Context) ([]*model.Club, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}

	clubs := make([]*model.Club, 0, len(s.clubs))
	for _, c := range s.clubs {
		clubs = append(clubs, s.cloneClub(c))
	}
	sort.Slice(clubs, func(i, j int) bool { return clubs[i].ID < clubs[j].ID })
	return clubs, nil
}

// Update applies the non-nil fields of upd
func (r *Clubs) Update(ctx context.Context, id int64, upd model.ClubUpdate) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}

	club, ok := s.clubs[id]
	if !ok {
		return database.ErrNotFound
	}
	if err := s.checkClubRefs(upd.AdminID, upd.LeaderID); err != nil {
		return err
	}

	if upd.Name != nil {
		club.Name = *upd.Name
	}
	if upd.Description != nil {
		club.Description = *upd.Description
	}
	if upd.Image != nil {
		club.Image = *upd.Image
	}
	if upd.AdminID != nil {
		club.AdminID = copyPtr(upd.AdminID)
	}
	if upd.LeaderID != nil {
		club.LeaderID = copyPtr(upd.LeaderID)
	}
	return nil
}

// Delete removes a club with its memberships, announcements and events
func (r *Clubs) Delete(ctx context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}

	if _, ok := s.clubs[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.clubs, id)

	s.members = slices.DeleteFunc(s.members, func(m *model.Membership) bool { return m.ClubID == id })
	s.clubAnnouncements = slices.DeleteFunc(s.clubAnnouncements, func(a *model.Announcement) bool {
		return *a.ClubID == id
	})
	for eid, e := range s.events {
		if e.ClubID != nil && *e.ClubID == id {
			delete(s.events, eid)
		}
	}
	return nil
}

func (s *Store) checkClubRefs(adminID, leaderID *int64) error {
	if adminID != nil {
		if _, ok := s.users[*adminID]; !ok {
			return foreignKey("clubs_admin_id_fkey")
		}
	}
	if leaderID != nil {
		if _, ok := s.users[*leaderID]; !ok {
			return foreignKey("clubs_leader_id_fkey")
		}
	}
	return nil
}

func (s *Store) cloneClub(c *model.Club) *model.Club {
	if c == nil {
		return nil
	}
	out := *c
	out.AdminID = copyPtr(c.AdminID)
	out.LeaderID = copyPtr(c.LeaderID)
	return &out
}

// ============================================================================
// Members
// ============================================================================

// Members implements service.MemberRepository.
type Members struct{ s *Store }

// Add creates a membership with the same constraint errors as club_members
func (r *Members) Add(ctx context.Context, clubID, userID int64) (*model.Membership, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}

	if _, ok := s.clubs[clubID]; !ok {
		return nil, foreignKey("club_members_club_id_fkey")
	}
	if _, ok := s.users[userID]; !ok {
		return nil, foreignKey("club_members_user_id_fkey")
	}
	for _, m := range s.members {
		if m.ClubID == clubID && m.UserID == userID {
			return nil, duplicate("club_members_club_id_user_id_key")
		}
	}

	m := &model.Membership{
		ID:       s.nextID("club_members"),
		ClubID:   clubID,
		UserID:   userID,
		JoinedAt: s.now(),
	}
	s.members = append(s.members, m)
	return copyPtr(m), nil
}

// Remove deletes a membership, or returns database.ErrNotFound
func (r *Members) Remove(ctx context.Context, clubID, userID int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}

	before := len(s.members)
	s.members = slices.DeleteFunc(s.members, func(m *model.Membership) bool {
		return m.ClubID == clubID && m.UserID == userID
	})
	if len(s.members) == before {
		return database.ErrNotFound
	}
	return nil
}

// IsMember checks if a user belongs to a club
func (r *Members) IsMember(ctx context.Context, clubID, userID int64) (bool, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return false, err
	}

	for _, m := range s.members {
		if m.ClubID == clubID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// ListUserIDs returns the member user IDs of a club in join order
func (r *Members) ListUserIDs(ctx context.Context, clubID int64) ([]int64, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}

	ids := []int64{}
	for _, m := range s.members {
		if m.ClubID == clubID {
			ids = append(ids, m.UserID)
		}
	}
	return ids, nil
}

// ListClubIDs returns the IDs of the clubs a user belongs to in join order
func (r *Members) ListClubIDs(ctx context.Context, userID int64) ([]int64, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}

	ids := []int64{}
	for _, m := range s.members {
		if m.UserID == userID {
			ids = append(ids, m.ClubID)
		}
	}
	return ids, nil
}

// ListClubs returns the clubs a user belongs to in join order
func (r *Members) ListClubs(ctx context.Context, userID int64) ([]model.ClubRef, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}

	refs := []model.ClubRef{}
	for _, m := range s.members {
		if m.UserID != userID {
			continue
		}
		if c, ok := s.clubs[m.ClubID]; ok {
			refs = append(refs, model.ClubRef{ID: c.ID, Name: c.Name})
		}
	}
	return refs, nil
}

// ============================================================================
// Announcements
// ============================================================================

// Announcements implements service.AnnouncementRepository.
type Announcements struct{ s *Store }

// CreateGeneral posts a platform-wide announcement
func (r *Announcements) CreateGeneral(ctx context.Context, text string) (*model.Announcement, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}

	a := model.NewAnnouncement(s.nextID("general_announcements"), nil, text, s.now())
	s.general = append(s.general, a)
	return copyPtr(a), nil
}

// ListGeneral returns general announcements, newest first
func (r *Announcements) ListGeneral(ctx context.Context) ([]*model.Announcement, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	return newestFirst(s.general, 0), nil
}

// DeleteGeneral removes a general announcement; a missing ID is not an error
func (r *Announcements) DeleteGeneral(ctx context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}

	s.general = slices.DeleteFunc(s.general, func(a *model.Announcement) bool { return a.ID == id })
	return nil
}

// CreateForClub posts an announcement to an existing club
func (r *Announcements) CreateForClub(ctx context.Context, clubID int64, text string) (*model.Announcement, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}

	if _, ok := s.clubs[clubID]; !ok {
		return nil, foreignKey("club_announcements_club_id_fkey")
	}
	cid := clubID
	a := model.NewAnnouncement(s.nextID("club_announcements"), &cid, text, s.now())
	s.clubAnnouncements = append(s.clubAnnouncements, a)
	return cloneAnnouncement(a), nil
}

// ListForClub returns a club's announcements, newest first, up to limit when positive
func (r *Announcements) ListForClub(ctx context.Context, clubID int64, limit int) ([]*model.Announcement, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}

	var scoped []*model.Announcement
	for _, a := range s.clubAnnouncements {
		if *a.ClubID == clubID {
			scoped = append(scoped, a)
		}
	}
	return newestFirst(scoped, limit), nil
}

// DeleteForClub removes the announcement matching both IDs; no match is not an error
func (r *Announcements) DeleteForClub(ctx context.Context, clubID, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}

	s.clubAnnouncements = slices.DeleteFunc(s.clubAnnouncements, func(a *model.Announcement) bool {
		return a.ID == id && *a.ClubID == clubID
	})
	return nil
}

func newestFirst(in []*model.Announcement, limit int) []*model.Announcement {
	out := make([]*model.Announcement, 0, len(in))
	for _, a := range in {
		out = append(out, cloneAnnouncement(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func cloneAnnouncement(a *model.Announcement) *model.Announcement {
	out := *a
	out.ClubID = copyPtr(a.ClubID)
	return &out
}

// ============================================================================
// Events
// ============================================================================

// Events implements service.EventRepository.
type Events struct{ s *Store }

// Create inserts an event after checking its club exists
func (r *Events) Create(ctx context.Context, event *model.Event) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}

	if event.ClubID != nil {
		if _, ok := s.clubs[*event.ClubID]; !ok {
			return foreignKey("events_club_id_fkey")
		}
	}

	event.ID = s.nextID("events")
	event.CreatedAt = s.now()
	stored := *event
	stored.ClubID = copyPtr(event.ClubID)
	stored.ClubName = nil
	s.events[event.ID] = &stored
	return nil
}

// GetByID returns the event with its club name, or nil when absent
func (r *Events) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	e, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	return s.joinClub(e), nil
}

// List returns every event by ascending date
func (r *Events) List(ctx context.Context) ([]*model.Event, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.sortedEvents(func(*model.Event) bool { return true }), nil
}

// ListForClub returns a club's events by ascending date
func (r *Events) ListForClub(ctx context.Context, clubID int64) ([]*model.Event, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.sortedEvents(func(e *model.Event) bool {
		return e.ClubID != nil && *e.ClubID == clubID
	}), nil
}

// Update applies the non-nil fields of upd
func (r *Events) Update(ctx context.Context, id int64, upd model.EventUpdate) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}

	e, ok := s.events[id]
	if !ok {
		return database.ErrNotFound
	}
	if upd.ClubID != nil {
		if _, ok := s.clubs[*upd.ClubID]; !ok {
			return foreignKey("events_club_id_fkey")
		}
		e.ClubID = copyPtr(upd.ClubID)
	}
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.Date != nil {
		e.Date = *upd.Date
	}
	return nil
}

// Delete removes an event
func (r *Events) Delete(ctx context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}

	if _, ok := s.events[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *Store) sortedEvents(keep func(*model.Event) bool) []*model.Event {
	events := []*model.Event{}
	for _, e := range s.events {
		if keep(e) {
			events = append(events, s.joinClub(e))
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].ID < events[j].ID
	})
	return events
}

// joinClub copies e and fills ClubName like the LEFT JOIN does.
func (s *Store) joinClub(e *model.Event) *model.Event {
	out := *e
	out.ClubID = copyPtr(e.ClubID)
	out.ClubName = nil
	if e.ClubID != nil {
		if c, ok := s.clubs[*e.ClubID]; ok {
			name := c.Name
			out.ClubName = &name
		}
	}
	return &out
}

// ============================================================================
// Stats
// ============================================================================

// Stats implements service.StatsRepository.
type Stats struct{ s *Store }

// Get counts every table
func (r *Stats) Get(ctx context.Context) (*model.Stats, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}

	return &model.Stats{
		TotalClubs:       int64(len(s.clubs)),
		TotalUsers:       int64(len(s.users)),
		TotalEvents:      int64(len(s.events)),
		TotalMemberships: int64(len(s.members)),
	}, nil
}
