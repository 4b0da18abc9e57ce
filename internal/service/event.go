package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"brewmeet.app/server/common/id"
	"brewmeet.app/server/internal/model"
	"brewmeet.app/server/internal/store"
)

var ErrEventNotFound = errors.New("event not found")

// CreateEventInput carries the fields a caller may set when creating an event.
type CreateEventInput struct {
	Theme          string
	Description    *string
	BannerImageURL *string
	DateTime       time.Time
	Status         model.EventStatus
	VenueID        *int64
	OrganizerID    *int64
}

// UpdateEventInput is a partial update; nil fields are left unchanged.
type UpdateEventInput struct {
	Theme          *string
	Description    *string
	BannerImageURL *string
	DateTime       *time.Time
	Status         *model.EventStatus
	VenueID        *int64
	OrganizerID    *int64
}

type EventService interface {
	Get(ctx context.Context, id int64) (*model.Event, error)
	List(ctx context.Context, limit, offset int32) ([]model.Event, error)
	Create(ctx context.Context, input CreateEventInput) (*model.Event, error)
	Update(ctx context.Context, id int64, input UpdateEventInput) (*model.Event, error)
	Delete(ctx context.Context, id int64) error
}

type eventService struct {
	events     store.EventStore
	organizers store.OrganizerStore
}

func NewEventService(events store.EventStore, organizers store.OrganizerStore) EventService {
	return &eventService{events: events, organizers: organizers}
}

func (s *eventService) Get(ctx context.Context, eventID int64) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("getting event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, limit, offset int32) ([]model.Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.events.List(ctx, limit, offset)
}

func (s *eventService) Create(ctx context.Context, input CreateEventInput) (*model.Event, error) {
	status := input.Status
	if status == "" {
		status = model.EventStatusDraft
	}

	event := &model.Event{
		ID:             id.New(),
		Theme:          input.Theme,
		Description:    input.Description,
		BannerImageURL: input.BannerImageURL,
		DateTime:       input.DateTime,
		Status:         status,
		SyncStatus:     model.SyncStatusSynced,
		VenueID:        input.VenueID,
		OrganizerID:    input.OrganizerID,
	}

	if event.OrganizerID == nil {
		if organizer, err := s.organizers.GetDefault(ctx); err == nil {
			event.OrganizerID = &organizer.ID
		}
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	slog.InfoContext(ctx, "event created", "event_id", event.ID, "theme", event.Theme)
	return event, nil
}

func (s *eventService) Update(ctx context.Context, eventID int64, input UpdateEventInput) (*model.Event, error) {
	cols := map[string]any{}
	if input.Theme != nil {
		cols["theme"] = *input.Theme
	}
	if input.Description != nil {
		cols["description"] = *input.Description
	}
	if input.BannerImageURL != nil {
		cols["banner_image_url"] = *input.BannerImageURL
	}
	if input.DateTime != nil {
		cols["date_time"] = *input.DateTime
	}
	if input.Status != nil {
		cols["status"] = *input.Status
	}
	if input.VenueID != nil {
		cols["venue_id"] = *input.VenueID
	}
	if input.OrganizerID != nil {
		cols["organizer_id"] = *input.OrganizerID
	}

	if len(cols) > 0 {
		if err := s.events.UpdateColumns(ctx, eventID, cols); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrEventNotFound
			}
			return nil, fmt.Errorf("updating event: %w", err)
		}
	}
	return s.Get(ctx, eventID)
}

func (s *eventService) Delete(ctx context.Context, eventID int64) error {
	if err := s.events.Delete(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("deleting event: %w", err)
	}
	slog.InfoContext(ctx, "event deleted", "event_id", eventID)
	return nil
}
