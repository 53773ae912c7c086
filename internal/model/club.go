package model

import "time"

// Club represents a club on the platform
type Club struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	AdminID     *int64    `json:"adminId"`
	LeaderID    *int64    `json:"leaderId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ClubUpdate holds the fields of a partial club update; nil means unchanged.
type ClubUpdate struct {
	Name        *string
	Description *string
	Image       *string
	AdminID     *int64
	LeaderID    *int64
}

// IsEmpty reports whether the update changes nothing
func (u ClubUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Image == nil &&
		u.AdminID == nil && u.LeaderID == nil
}

// ClubDetail is a club aggregated with its members, announcements and events
type ClubDetail struct {
	*Club
	Members       []int64         `json:"members"`
	Announcements []*Announcement `json:"announcements"`
	Events        []*Event        `json:"events"`
}

// Membership links a user to a club
type Membership struct {
	ID       int64     `json:"id"`
	ClubID   int64     `json:"clubId"`
	UserID   int64     `json:"userId"`
	JoinedAt time.Time `json:"joinedAt"`
}
