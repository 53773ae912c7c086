package model

import "time"

// UserRole represents the role of a user on the platform
type UserRole string

const (
	UserRoleAdmin  UserRole = "Admin"
	UserRoleLeader UserRole = "Leader"
	UserRoleMember UserRole = "Member" // Default role
)

// IsValid reports whether r is one of the known roles
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleLeader, UserRoleMember:
		return true
	}
	return false
}

// User represents a user account
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserUpdate holds the fields of a partial user update; nil means unchanged.
type UserUpdate struct {
	Email        *string
	PasswordHash *string
	Role         *UserRole
}

// IsEmpty reports whether the update changes nothing
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.PasswordHash == nil && u.Role == nil
}

// ClubRef is the short form of a club shown on a user's profile
type ClubRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserDetail is a user together with the clubs they belong to
type UserDetail struct {
	*User
	Clubs []ClubRef `json:"clubs"`
}

// SessionUser is the account summary returned by login and register
type SessionUser struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
	Clubs []int64  `json:"clubs"`
}
