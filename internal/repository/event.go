package repository

import (
	"context"
	"fmt"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
)

const eventSelect = `
	SELECT e.id, e.title, e.description, e.event_date, e.club_id, e.created_at, c.name AS club_name
	FROM events e
	LEFT JOIN clubs c ON c.id = e.club_id`

// EventRepository handles event data access
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts an event and fills in its ID and creation time
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	row, err := r.db.QueryOne(ctx, `
		INSERT INTO events (title, description, event_date, club_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		event.Title, event.Description, event.Date, event.ClubID)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	event.ID = getInt64(row, "id")
	event.CreatedAt = getTime(row, "created_at")
	return nil
}

// GetByID retrieves an event with its club name, or nil when absent
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	row, err := r.db.QueryOne(ctx, eventSelect+` WHERE e.id = $1`, id)
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return parseEvent(row), nil
}

// List returns every event by ascending date, with club names
func (r *EventRepository) List(ctx context.Context) ([]*model.Event, error) {
	rows, err := r.db.Query(ctx, eventSelect+` ORDER BY e.event_date ASC, e.id ASC`)
	if err != nil {
		return nil, err
	}
	return parseEvents(rows), nil
}

// ListForClub returns a club's events by ascending date
func (r *EventRepository) ListForClub(ctx context.Context, clubID int64) ([]*model.Event, error) {
	rows, err := r.db.Query(ctx, eventSelect+` WHERE e.club_id = $1 ORDER BY e.event_date ASC, e.id ASC`, clubID)
	if err != nil {
		return nil, err
	}
	return parseEvents(rows), nil
}

// Update applies the non-nil fields of upd
func (r *EventRepository) Update(ctx context.Context, id int64, upd model.EventUpdate) error {
	return affectedOrNotFound(r.db.Execute(ctx, `
		UPDATE events SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			event_date = COALESCE($4, event_date),
			club_id = COALESCE($5, club_id)
		WHERE id = $1`,
		id, upd.Title, upd.Description, upd.Date, upd.ClubID))
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return affectedOrNotFound(r.db.Execute(ctx, `DELETE FROM events WHERE id = $1`, id))
}

func parseEvents(rows []database.Row) []*model.Event {
	events := make([]*model.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, parseEvent(row))
	}
	return events
}

func parseEvent(row database.Row) *model.Event {
	return &model.Event{
		ID:          getInt64(row, "id"),
		Title:       getString(row, "title"),
		Description: getString(row, "description"),
		Date:        getString(row, "event_date"),
		ClubID:      getInt64Ptr(row, "club_id"),
		ClubName:    getStringPtr(row, "club_name"),
		CreatedAt:   getTime(row, "created_at"),
	}
}
