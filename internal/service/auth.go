package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
	"github.com/forgo/clubhub/api/internal/validate"
)

// bcrypt only looks at the first 72 bytes, so longer passwords are refused.
const maxPasswordBytes = 72

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, id int64, upd model.UserUpdate) error
	Delete(ctx context.Context, id int64) error
}

// MemberRepository defines the interface for club membership storage
type MemberRepository interface {
	Add(ctx context.Context, clubID, userID int64) (*model.Membership, error)
	Remove(ctx context.Context, clubID, userID int64) error
	IsMember(ctx context.Context, clubID, userID int64) (bool, error)
	ListUserIDs(ctx context.Context, clubID int64) ([]int64, error)
	ListClubIDs(ctx context.Context, userID int64) ([]int64, error)
	ListClubs(ctx context.Context, userID int64) ([]model.ClubRef, error)
}

// AuthService handles login and registration
type AuthService struct {
	userRepo   UserRepository
	memberRepo MemberRepository
	bcryptCost int
	dummyHash  []byte
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo   UserRepository
	MemberRepo MemberRepository
	BcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	// Compared against when the email is unknown so both paths cost one bcrypt run.
	dummy, err := bcrypt.GenerateFromPassword([]byte("clubhub-timing-equalizer"), cost)
	if err != nil {
		panic(fmt.Sprintf("service: invalid bcrypt cost %d: %v", cost, err))
	}

	return &AuthService{
		userRepo:   cfg.UserRepo,
		memberRepo: cfg.MemberRepo,
		bcryptCost: cost,
		dummyHash:  dummy,
	}
}

// Login verifies credentials and returns the account summary
func (s *AuthService) Login(ctx context.Context, body map[string]any) (*model.SessionUser, error) {
	vals, err := validate.Validate(body, "Email and password required",
		validate.Required("email", validate.Text),
		validate.Required("password", validate.Secret),
	)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(vals.String("email"))
	password := vals.String("password")

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if !checkPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	clubs, err := s.memberRepo.ListClubIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return sessionUser(user, clubs), nil
}

// Register creates a new account with email/password
func (s *AuthService) Register(ctx context.Context, body map[string]any) (*model.SessionUser, error) {
	vals, err := validate.Validate(body, "Email and password required",
		validate.Required("email", validate.Text),
		validate.Required("password", validate.Secret),
		validate.Optional("role", validate.Role).RejectBlank(),
	)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(vals.String("email"))
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	password := vals.String("password")
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	role := model.UserRoleMember
	if r := vals.RolePtr("role"); r != nil {
		role = *r
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := hashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{Email: email, PasswordHash: hash, Role: role}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	slog.Info("user registered", slog.Int64("user_id", user.ID), slog.String("role", string(user.Role)))
	return sessionUser(user, []int64{}), nil
}

func sessionUser(user *model.User, clubs []int64) *model.SessionUser {
	return &model.SessionUser{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		Clubs: clubs,
	}
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func validatePassword(password string) error {
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	// Basic email validation
	if email == "" {
		return false
	}
	if len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	if strings.Count(email, "@") > 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	if dotIndex >= len(email)-1 {
		return false
	}
	return true
}
