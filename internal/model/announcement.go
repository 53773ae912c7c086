package model

import "time"

// DisplayDateLayout formats announcement dates for display (UTC)
const DisplayDateLayout = "2006-01-02 15:04:05"

// Announcement is a general or club-scoped notice. ClubID is nil for
// general announcements.
type Announcement struct {
	ID        int64     `json:"id"`
	ClubID    *int64    `json:"clubId,omitempty"`
	Text      string    `json:"text"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAnnouncement builds an announcement with its display date derived
// from createdAt.
func NewAnnouncement(id int64, clubID *int64, text string, createdAt time.Time) *Announcement {
	return &Announcement{
		ID:        id,
		ClubID:    clubID,
		Text:      text,
		Date:      createdAt.UTC().Format(DisplayDateLayout),
		CreatedAt: createdAt,
	}
}
