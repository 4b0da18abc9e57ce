package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"brewmeet.app/server/common"
	"brewmeet.app/server/common/id"
	"brewmeet.app/server/internal/model"
	"brewmeet.app/server/internal/store"
)

var ErrVenueNotFound = errors.New("venue not found")

type CreateVenueInput struct {
	Name    string
	Address *string
	City    *string
	State   *string
	Zip     *string
}

type VenueService interface {
	Get(ctx context.Context, id int64) (*model.Venue, error)
	List(ctx context.Context, limit, offset int32) ([]model.Venue, error)
	Create(ctx context.Context, input CreateVenueInput) (*model.Venue, error)
	Update(ctx context.Context, id int64, input CreateVenueInput) (*model.Venue, error)
	Deactivate(ctx context.Context, id int64) error
}

type venueService struct {
	venues store.VenueStore
}

func NewVenueService(venues store.VenueStore) VenueService {
	return &venueService{venues: venues}
}

func (s *venueService) Get(ctx context.Context, venueID int64) (*model.Venue, error) {
	venue, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("getting venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) List(ctx context.Context, limit, offset int32) ([]model.Venue, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.venues.List(ctx, limit, offset)
}

func (s *venueService) Create(ctx context.Context, input CreateVenueInput) (*model.Venue, error) {
	venue := &model.Venue{
		ID:       id.New(),
		Name:     common.CleanText(input.Name),
		Address:  input.Address,
		City:     input.City,
		State:    input.State,
		Zip:      input.Zip,
		IsActive: true,
	}
	if err := s.venues.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("creating venue: %w", err)
	}

	slog.InfoContext(ctx, "venue created", "venue_id", venue.ID, "name", venue.Name)
	return venue, nil
}

func (s *venueService) Update(ctx context.Context, venueID int64, input CreateVenueInput) (*model.Venue, error) {
	venue, err := s.Get(ctx, venueID)
	if err != nil {
		return nil, err
	}

	venue.Name = common.CleanText(input.Name)
	venue.Address = input.Address
	venue.City = input.City
	venue.State = input.State
	venue.Zip = input.Zip

	if err := s.venues.Update(ctx, venue); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("updating venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) Deactivate(ctx context.Context, venueID int64) error {
	if err := s.venues.Deactivate(ctx, venueID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrVenueNotFound
		}
		return fmt.Errorf("deactivating venue: %w", err)
	}
	slog.InfoContext(ctx, "venue deactivated", "venue_id", venueID)
	return nil
}
