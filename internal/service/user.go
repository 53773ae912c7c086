package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
	"github.com/forgo/clubhub/api/internal/validate"
)

// UserService handles user administration
type UserService struct {
	userRepo   UserRepository
	memberRepo MemberRepository
	bcryptCost int
}

// UserServiceConfig holds configuration for the user service
type UserServiceConfig struct {
	UserRepo   UserRepository
	MemberRepo MemberRepository
	BcryptCost int
}

// NewUserService creates a new user service
func NewUserService(cfg UserServiceConfig) *UserService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserService{
		userRepo:   cfg.UserRepo,
		memberRepo: cfg.MemberRepo,
		bcryptCost: cost,
	}
}

// List returns every user's public fields
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

// Get returns a user with the clubs they belong to
func (s *UserService) Get(ctx context.Context, id int64) (*model.UserDetail, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	clubs, err := s.memberRepo.ListClubs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.UserDetail{User: user, Clubs: clubs}, nil
}

// Update applies a partial update to a user. An empty update is a no-op.
func (s *UserService) Update(ctx context.Context, id int64, body map[string]any) error {
	vals, err := validate.Validate(body, "",
		validate.Optional("email", validate.Text),
		validate.Optional("password", validate.Secret),
		validate.Optional("role", validate.Role).WithMessage("Invalid role"),
	)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	upd := model.UserUpdate{Role: vals.RolePtr("role")}

	if email := vals.StringPtr("email"); email != nil {
		normalized := normalizeEmail(*email)
		if !isValidEmail(normalized) {
			return ErrInvalidEmail
		}
		other, err := s.userRepo.GetByEmail(ctx, normalized)
		if err != nil {
			return err
		}
		if other != nil && other.ID != id {
			return ErrUserExists
		}
		upd.Email = &normalized
	}

	if password := vals.StringPtr("password"); password != nil {
		if err := validatePassword(*password); err != nil {
			return err
		}
		hash, err := hashPassword(*password, s.bcryptCost)
		if err != nil {
			return err
		}
		upd.PasswordHash = &hash
	}

	if upd.IsEmpty() {
		return nil
	}

	if err := s.userRepo.Update(ctx, id, upd); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return ErrUserNotFound
		case errors.Is(err, database.ErrDuplicate):
			return ErrUserExists
		}
		return err
	}
	return nil
}

// Delete removes a user; memberships go with it and club references are cleared
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	slog.Info("user deleted", slog.Int64("user_id", id))
	return nil
}
