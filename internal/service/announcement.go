package service

import (
	"context"
	"errors"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
	"github.com/forgo/clubhub/api/internal/validate"
)

// AnnouncementRepository defines the interface for announcement storage
type AnnouncementRepository interface {
	CreateGeneral(ctx context.Context, text string) (*model.Announcement, error)
	ListGeneral(ctx context.Context) ([]*model.Announcement, error)
	DeleteGeneral(ctx context.Context, id int64) error
	CreateForClub(ctx context.Context, clubID int64, text string) (*model.Announcement, error)
	ListForClub(ctx context.Context, clubID int64, limit int) ([]*model.Announcement, error)
	DeleteForClub(ctx context.Context, clubID, id int64) error
}

// AnnouncementService handles general and club-scoped announcements
type AnnouncementService struct {
	announcementRepo AnnouncementRepository
	clubRepo         ClubRepository
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(announcementRepo AnnouncementRepository, clubRepo ClubRepository) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		clubRepo:         clubRepo,
	}
}

// List returns general announcements, newest first
func (s *AnnouncementService) List(ctx context.Context) ([]*model.Announcement, error) {
	return s.announcementRepo.ListGeneral(ctx)
}

// Create posts a general announcement
func (s *AnnouncementService) Create(ctx context.Context, body map[string]any) (*model.Announcement, error) {
	text, err := announcementText(body)
	if err != nil {
		return nil, err
	}
	return s.announcementRepo.CreateGeneral(ctx, text)
}

// Delete removes a general announcement. Deleting an unknown ID succeeds.
func (s *AnnouncementService) Delete(ctx context.Context, id int64) error {
	return s.announcementRepo.DeleteGeneral(ctx, id)
}

// ListForClub returns a club's announcements, newest first
func (s *AnnouncementService) ListForClub(ctx context.Context, clubID int64) ([]*model.Announcement, error) {
	if err := s.requireClub(ctx, clubID); err != nil {
		return nil, err
	}
	return s.announcementRepo.ListForClub(ctx, clubID, 0)
}

// CreateForClub posts an announcement to a club
func (s *AnnouncementService) CreateForClub(ctx context.Context, clubID int64, body map[string]any) (*model.Announcement, error) {
	text, err := announcementText(body)
	if err != nil {
		return nil, err
	}
	if err := s.requireClub(ctx, clubID); err != nil {
		return nil, err
	}

	announcement, err := s.announcementRepo.CreateForClub(ctx, clubID, text)
	if err != nil {
		if errors.Is(err, database.ErrForeignKey) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return announcement, nil
}

// DeleteForClub removes a club announcement. A pair that matches nothing succeeds.
func (s *AnnouncementService) DeleteForClub(ctx context.Context, clubID, id int64) error {
	return s.announcementRepo.DeleteForClub(ctx, clubID, id)
}

func (s *AnnouncementService) requireClub(ctx context.Context, clubID int64) error {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club == nil {
		return ErrClubNotFound
	}
	return nil
}

func announcementText(body map[string]any) (string, error) {
	vals, err := validate.Validate(body, "Announcement text required", validate.Required("text", validate.Text))
	if err != nil {
		return "", err
	}
	return vals.String("text"), nil
}
