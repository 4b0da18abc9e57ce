package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"brewmeet.app/server/common/id"
	"brewmeet.app/server/internal/model"
	"brewmeet.app/server/internal/store"
)

var ErrOrganizerNotFound = errors.New("organizer not found")

type CreateOrganizerInput struct {
	Name    string
	Email   *string
	Phone   *string
	Website *string
}

type OrganizerService interface {
	Get(ctx context.Context, id int64) (*model.Organizer, error)
	List(ctx context.Context) ([]model.Organizer, error)
	Create(ctx context.Context, input CreateOrganizerInput) (*model.Organizer, error)
	Update(ctx context.Context, id int64, input CreateOrganizerInput) (*model.Organizer, error)
	// SetDefault moves the default flag to the given organizer. The clear
	// and set run in one transaction so at most one default survives.
	SetDefault(ctx context.Context, id int64) (*model.Organizer, error)
	Delete(ctx context.Context, id int64) error
}

type organizerService struct {
	organizers store.OrganizerStore
	txRunner   TxRunner
}

func NewOrganizerService(organizers store.OrganizerStore, txRunner TxRunner) OrganizerService {
	return &organizerService{organizers: organizers, txRunner: txRunner}
}

func (s *organizerService) Get(ctx context.Context, organizerID int64) (*model.Organizer, error) {
	organizer, err := s.organizers.GetByID(ctx, organizerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizerNotFound
		}
		return nil, fmt.Errorf("getting organizer: %w", err)
	}
	return organizer, nil
}

func (s *organizerService) List(ctx context.Context) ([]model.Organizer, error) {
	return s.organizers.List(ctx)
}

func (s *organizerService) Create(ctx context.Context, input CreateOrganizerInput) (*model.Organizer, error) {
	organizer := &model.Organizer{
		ID:      id.New(),
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Website: input.Website,
	}
	if err := s.organizers.Create(ctx, organizer); err != nil {
		return nil, fmt.Errorf("creating organizer: %w", err)
	}

	slog.InfoContext(ctx, "organizer created", "organizer_id", organizer.ID, "name", organizer.Name)
	return organizer, nil
}

func (s *organizerService) Update(ctx context.Context, organizerID int64, input CreateOrganizerInput) (*model.Organizer, error) {
	organizer, err := s.Get(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	organizer.Name = input.Name
	organizer.Email = input.Email
	organizer.Phone = input.Phone
	organizer.Website = input.Website

	if err := s.organizers.Update(ctx, organizer); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizerNotFound
		}
		return nil, fmt.Errorf("updating organizer: %w", err)
	}
	return organizer, nil
}

func (s *organizerService) SetDefault(ctx context.Context, organizerID int64) (*model.Organizer, error) {
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Organizers().ClearDefault(ctx); err != nil {
			return fmt.Errorf("clearing existing default: %w", err)
		}
		if err := stores.Organizers().SetDefault(ctx, organizerID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrOrganizerNotFound
			}
			return fmt.Errorf("setting default organizer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "default organizer changed", "organizer_id", organizerID)
	return s.Get(ctx, organizerID)
}

func (s *organizerService) Delete(ctx context.Context, organizerID int64) error {
	if err := s.organizers.Delete(ctx, organizerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOrganizerNotFound
		}
		return fmt.Errorf("deleting organizer: %w", err)
	}
	return nil
}
