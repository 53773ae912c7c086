package model

import (
	"errors"
	"time"
)

// ErrInvalidEventDate is returned by ParseEventDate for non ISO-8601 input
var ErrInvalidEventDate = errors.New("invalid event date")

// Accepted event date layouts, most specific last.
var eventDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseEventDate parses an ISO-8601 calendar date or date-time
func ParseEventDate(s string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidEventDate
}

// Event represents a scheduled event. The date is stored as given.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	ClubID      *int64    `json:"clubId"`
	ClubName    *string   `json:"clubName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EventUpdate holds the fields of a partial event update; nil means unchanged.
type EventUpdate struct {
	Title       *string
	Description *string
	Date        *string
	ClubID      *int64
}

// IsEmpty reports whether the update changes nothing
func (u EventUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Date == nil && u.ClubID == nil
}
