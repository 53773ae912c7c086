package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/forgo/clubhub/api/internal/model"
	"github.com/forgo/clubhub/api/internal/testing/fixtures"
	"github.com/forgo/clubhub/api/internal/testing/memstore"
	"github.com/forgo/clubhub/api/internal/validate"
)

// staleEmailLookup simulates a concurrent register that wins between the
// pre-check and the insert.
type staleEmailLookup struct{ *memstore.Users }

func (staleEmailLookup) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, nil
}

func TestRegister_ThenLogin(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	registered, err := env.auth.Register(bg(), map[string]any{"email": "a@x.io", "password": "p"})
	requireNoErr(t, err)

	want := &model.SessionUser{ID: registered.ID, Email: "a@x.io", Role: model.UserRoleMember, Clubs: []int64{}}
	if diff := cmp.Diff(want, registered); diff != "" {
		t.Errorf("register result mismatch (-want +got):\n%s", diff)
	}

	loggedIn, err := env.auth.Login(bg(), map[string]any{"email": "a@x.io", "password": "p"})
	requireNoErr(t, err)
	if diff := cmp.Diff(want, loggedIn); diff != "" {
		t.Errorf("login result mismatch (-want +got):\n%s", diff)
	}
}

func TestRegister_StoresHashNotPassword(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	u, err := env.auth.Register(bg(), map[string]any{"email": "hash@x.io", "password": "secret"})
	requireNoErr(t, err)

	stored, err := env.store.Users.GetByID(bg(), u.ID)
	requireNoErr(t, err)
	if stored.PasswordHash == "secret" || !strings.HasPrefix(stored.PasswordHash, "$2") {
		t.Errorf("expected bcrypt hash, got %q", stored.PasswordHash)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.auth.Register(bg(), map[string]any{"email": "a@x.io", "password": "p"})
	requireNoErr(t, err)

	_, err = env.auth.Register(bg(), map[string]any{"email": "A@X.io ", "password": "other"})
	requireErr(t, err, ErrUserExists)
}

func TestRegister_DuplicateCaughtByConstraint(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	f := fixtures.New(fixtures.Repos{Users: store.Users})
	existing := f.CreateUser(t)

	auth := NewAuthService(AuthServiceConfig{
		UserRepo:   staleEmailLookup{store.Users},
		MemberRepo: store.Members,
		BcryptCost: 4,
	})

	_, err := auth.Register(bg(), map[string]any{"email": existing.Email, "password": "p"})
	requireErr(t, err, ErrUserExists)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body map[string]any
		msg  string
	}{
		{"missing email", map[string]any{"password": "p"}, "Email and password required"},
		{"missing password", map[string]any{"email": "a@x.io"}, "Email and password required"},
		{"empty password", map[string]any{"email": "a@x.io", "password": ""}, "Email and password required"},
		{"invalid role", map[string]any{"email": "a@x.io", "password": "p", "role": "Owner"}, validate.MsgInvalidRole},
		{"blank role", map[string]any{"email": "a@x.io", "password": "p", "role": ""}, validate.MsgInvalidRole},
		{"null role", map[string]any{"email": "a@x.io", "password": "p", "role": nil}, validate.MsgInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.auth.Register(bg(), tt.body)
			requireValidation(t, err, tt.msg)
		})
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	for _, email := range []string{"plainaddress", "@x.io", "a@b", "a@b.", "a@@b.io"} {
		_, err := env.auth.Register(bg(), map[string]any{"email": email, "password": "p"})
		if !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("email %q: expected ErrInvalidEmail, got %v", email, err)
		}
	}
}

func TestRegister_PasswordTooLong(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.auth.Register(bg(), map[string]any{"email": "a@x.io", "password": strings.Repeat("x", 73)})
	requireErr(t, err, ErrPasswordTooLong)
}

func TestRegister_WithRole(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	u, err := env.auth.Register(bg(), map[string]any{"email": "lead@x.io", "password": "p", "role": "Leader"})
	requireNoErr(t, err)
	if u.Role != model.UserRoleLeader {
		t.Errorf("expected Leader, got %s", u.Role)
	}
}

func TestRegister_OmittedRoleDefaultsToMember(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	u, err := env.auth.Register(bg(), map[string]any{"email": "plain@x.io", "password": "p"})
	requireNoErr(t, err)
	if u.Role != model.UserRoleMember {
		t.Errorf("expected Member, got %s", u.Role)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.f.CreateUser(t)

	_, err := env.auth.Login(bg(), map[string]any{"email": user.Email, "password": "wrong"})
	requireErr(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(bg(), map[string]any{"email": "nobody@x.io", "password": fixtures.DefaultPassword})
	requireErr(t, err, ErrInvalidCredentials)
}

func TestLogin_MissingFields(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.auth.Login(bg(), map[string]any{"email": "a@x.io"})
	requireValidation(t, err, "Email and password required")
}

func TestLogin_ReturnsClubIDs(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	user := env.f.CreateUser(t)
	c1 := env.f.CreateClub(t)
	c2 := env.f.CreateClub(t)
	env.f.Join(t, c1, user)
	env.f.Join(t, c2, user)

	got, err := env.auth.Login(bg(), map[string]any{"email": strings.ToUpper(user.Email), "password": fixtures.DefaultPassword})
	requireNoErr(t, err)

	if diff := cmp.Diff([]int64{c1.ID, c2.ID}, got.Clubs); diff != "" {
		t.Errorf("clubs mismatch (-want +got):\n%s", diff)
	}
}

func TestLogin_StoreFailure(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	boom := errors.New("connection reset")
	env.store.Fail(boom)

	_, err := env.auth.Login(bg(), map[string]any{"email": "a@x.io", "password": "p"})
	requireErr(t, err, boom)
}
