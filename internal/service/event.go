package service

import (
	"context"
	"errors"

	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/model"
	"github.com/forgo/clubhub/api/internal/validate"
)

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	ListForClub(ctx context.Context, clubID int64) ([]*model.Event, error)
	Update(ctx context.Context, id int64, upd model.EventUpdate) error
	Delete(ctx context.Context, id int64) error
}

// EventService handles event operations
type EventService struct {
	eventRepo EventRepository
	clubRepo  ClubRepository
}

// NewEventService creates a new event service
func NewEventService(eventRepo EventRepository, clubRepo ClubRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		clubRepo:  clubRepo,
	}
}

// List returns every event by ascending date
func (s *EventService) List(ctx context.Context) ([]*model.Event, error) {
	return s.eventRepo.List(ctx)
}

// Get returns one event with its club name
func (s *EventService) Get(ctx context.Context, id int64) (*model.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// Create creates a new event, optionally attached to a club
func (s *EventService) Create(ctx context.Context, body map[string]any) (*model.Event, error) {
	vals, err := validate.Validate(body, "Title, description, and date required",
		validate.Required("title", validate.Text),
		validate.Required("description", validate.Text),
		validate.Required("date", validate.Date),
		validate.Optional("clubId", validate.ID),
	)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		Title:       vals.String("title"),
		Description: vals.String("description"),
		Date:        vals.String("date"),
		ClubID:      vals.IDPtr("clubId"),
	}
	if event.ClubID != nil {
		club, err := s.requireClub(ctx, *event.ClubID)
		if err != nil {
			return nil, err
		}
		event.ClubName = &club.Name
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, database.ErrForeignKey) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return event, nil
}

// Update applies a partial update to an event. An empty update is a no-op.
func (s *EventService) Update(ctx context.Context, id int64, body map[string]any) error {
	vals, err := validate.Validate(body, "",
		validate.Optional("title", validate.Text),
		validate.Optional("description", validate.Text),
		validate.Optional("date", validate.Date),
		validate.Optional("clubId", validate.ID),
	)
	if err != nil {
		return err
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	upd := model.EventUpdate{
		Title:       vals.StringPtr("title"),
		Description: vals.StringPtr("description"),
		Date:        vals.StringPtr("date"),
		ClubID:      vals.IDPtr("clubId"),
	}
	if upd.IsEmpty() {
		return nil
	}
	if upd.ClubID != nil {
		if _, err := s.requireClub(ctx, *upd.ClubID); err != nil {
			return err
		}
	}

	if err := s.eventRepo.Update(ctx, id, upd); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return ErrEventNotFound
		case errors.Is(err, database.ErrForeignKey):
			return ErrClubNotFound
		}
		return err
	}
	return nil
}

// Delete removes an event
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

func (s *EventService) requireClub(ctx context.Context, clubID int64) (*model.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, ErrClubNotFound
	}
	return club, nil
}
