package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/validate"
)

// MembershipService handles joining and leaving clubs
type MembershipService struct {
	clubRepo   ClubRepository
	userRepo   UserRepository
	memberRepo MemberRepository
}

// NewMembershipService creates a new membership service
func NewMembershipService(clubRepo ClubRepository, userRepo UserRepository, memberRepo MemberRepository) *MembershipService {
	return &MembershipService{
		clubRepo:   clubRepo,
		userRepo:   userRepo,
		memberRepo: memberRepo,
	}
}

// Join adds the user named in body to a club
func (s *MembershipService) Join(ctx context.Context, clubID int64, body map[string]any) error {
	userID, err := memberUserID(body)
	if err != nil {
		return err
	}

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club == nil {
		return ErrClubNotFound
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	isMember, err := s.memberRepo.IsMember(ctx, clubID, userID)
	if err != nil {
		return err
	}
	if isMember {
		return ErrAlreadyMember
	}

	if _, err := s.memberRepo.Add(ctx, clubID, userID); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicate):
			return ErrAlreadyMember
		case errors.Is(err, database.ErrForeignKey):
			slog.Warn("membership reference vanished during join",
				slog.Int64("club_id", clubID),
				slog.Int64("user_id", userID),
				slog.String("constraint", database.ConstraintName(err)),
			)
			return s.missingReference(ctx, clubID)
		}
		return err
	}
	return nil
}

// Leave removes the user named in body from a club
func (s *MembershipService) Leave(ctx context.Context, clubID int64, body map[string]any) error {
	userID, err := memberUserID(body)
	if err != nil {
		return err
	}

	if err := s.memberRepo.Remove(ctx, clubID, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotMember
		}
		return err
	}
	return nil
}

// missingReference decides which side of a failed join disappeared
func (s *MembershipService) missingReference(ctx context.Context, clubID int64) error {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club == nil {
		return ErrClubNotFound
	}
	return ErrUserNotFound
}

func memberUserID(body map[string]any) (int64, error) {
	vals, err := validate.Validate(body, "User ID required", validate.Required("userId", validate.ID))
	if err != nil {
		return 0, err
	}
	return vals.ID("userId"), nil
}
