package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
	"github.com/forgo/clubhub/api/internal/validate"
)

const (
	defaultAnnouncementPreview = 10
	defaultClubConcurrency     = 8
)

// ClubRepository defines the interface for club storage
type ClubRepository interface {
	Create(ctx context.Context, club *model.Club) error
	GetByID(ctx context.Context, id int64) (*model.Club, error)
	List(ctx context.Context) ([]*model.Club, error)
	Update(ctx context.Context, id int64, upd model.ClubUpdate) error
	Delete(ctx context.Context, id int64) error
}

// ClubService handles club operations
type ClubService struct {
	clubRepo            ClubRepository
	memberRepo          MemberRepository
	userRepo            UserRepository
	announcementRepo    AnnouncementRepository
	eventRepo           EventRepository
	announcementPreview int
	concurrency         int
}

// ClubServiceConfig holds configuration for the club service
type ClubServiceConfig struct {
	ClubRepo         ClubRepository
	MemberRepo       MemberRepository
	UserRepo         UserRepository
	AnnouncementRepo AnnouncementRepository
	EventRepo        EventRepository
	// AnnouncementPreview caps the announcements attached to each club in List.
	AnnouncementPreview int
	// Concurrency bounds the per-club aggregation fan-out in List.
	Concurrency int
}

// NewClubService creates a new club service
func NewClubService(cfg ClubServiceConfig) *ClubService {
	preview := cfg.AnnouncementPreview
	if preview <= 0 {
		preview = defaultAnnouncementPreview
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultClubConcurrency
	}

	return &ClubService{
		clubRepo:            cfg.ClubRepo,
		memberRepo:          cfg.MemberRepo,
		userRepo:            cfg.UserRepo,
		announcementRepo:    cfg.AnnouncementRepo,
		eventRepo:           cfg.EventRepo,
		announcementPreview: preview,
		concurrency:         concurrency,
	}
}

// List returns every club with members, its latest announcements and events
func (s *ClubService) List(ctx context.Context) ([]*model.ClubDetail, error) {
	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]*model.ClubDetail, len(clubs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, club := range clubs {
		g.Go(func() error {
			detail, err := s.aggregate(gctx, club, s.announcementPreview)
			if err != nil {
				return err
			}
			details[i] = detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return details, nil
}

// Get returns one club with members, all announcements and events
func (s *ClubService) Get(ctx context.Context, id int64) (*model.ClubDetail, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, ErrClubNotFound
	}
	return s.aggregate(ctx, club, 0)
}

// Create creates a new club
func (s *ClubService) Create(ctx context.Context, body map[string]any) (*model.ClubDetail, error) {
	vals, err := validate.Validate(body, "Name, description, and image required",
		validate.Required("name", validate.Text),
		validate.Required("description", validate.Text),
		validate.Required("image", validate.Text),
		validate.Optional("adminId", validate.ID),
		validate.Optional("leaderId", validate.ID),
	)
	if err != nil {
		return nil, err
	}

	club := &model.Club{
		Name:        vals.String("name"),
		Description: vals.String("description"),
		Image:       vals.String("image"),
		AdminID:     vals.IDPtr("adminId"),
		LeaderID:    vals.IDPtr("leaderId"),
	}
	if err := s.requireUsers(ctx, club.AdminID, club.LeaderID); err != nil {
		return nil, err
	}

	if err := s.clubRepo.Create(ctx, club); err != nil {
		if errors.Is(err, database.ErrForeignKey) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &model.ClubDetail{
		Club:          club,
		Members:       []int64{},
		Announcements: []*model.Announcement{},
		Events:        []*model.Event{},
	}, nil
}

// Update applies a partial update to a club
func (s *ClubService) Update(ctx context.Context, id int64, body map[string]any) error {
	vals, err := validate.Validate(body, "",
		validate.Optional("name", validate.Text),
		validate.Optional("description", validate.Text),
		validate.Optional("image", validate.Text),
		validate.Optional("adminId", validate.ID),
		validate.Optional("leaderId", validate.ID),
	)
	if err != nil {
		return err
	}

	upd := model.ClubUpdate{
		Name:        vals.StringPtr("name"),
		Description: vals.StringPtr("description"),
		Image:       vals.StringPtr("image"),
		AdminID:     vals.IDPtr("adminId"),
		LeaderID:    vals.IDPtr("leaderId"),
	}
	if upd.IsEmpty() {
		return ErrNoUpdateFields
	}

	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if club == nil {
		return ErrClubNotFound
	}
	if err := s.requireUsers(ctx, upd.AdminID, upd.LeaderID); err != nil {
		return err
	}

	if err := s.clubRepo.Update(ctx, id, upd); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return ErrClubNotFound
		case errors.Is(err, database.ErrForeignKey):
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Delete removes a club together with its memberships, announcements and events
func (s *ClubService) Delete(ctx context.Context, id int64) error {
	if err := s.clubRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrClubNotFound
		}
		return err
	}

	slog.Info("club deleted", slog.Int64("club_id", id))
	return nil
}

// requireUsers checks that each non-nil user reference exists
func (s *ClubService) requireUsers(ctx context.Context, ids ...*int64) error {
	for _, id := range ids {
		if id == nil {
			continue
		}
		user, err := s.userRepo.GetByID(ctx, *id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
	}
	return nil
}

// aggregate attaches members, announcements (limit <= 0 means all) and events
func (s *ClubService) aggregate(ctx context.Context, club *model.Club, limit int) (*model.ClubDetail, error) {
	members, err := s.memberRepo.ListUserIDs(ctx, club.ID)
	if err != nil {
		return nil, err
	}
	announcements, err := s.announcementRepo.ListForClub(ctx, club.ID, limit)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListForClub(ctx, club.ID)
	if err != nil {
		return nil, err
	}

	return &model.ClubDetail{
		Club:          club,
		Members:       members,
		Announcements: announcements,
		Events:        events,
	}, nil
}
