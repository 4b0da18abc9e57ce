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
	"brewmeet.app/server/internal/wordpress"
)

// VenueResolution is the outcome of reconciling one remote venue.
type VenueResolution struct {
	VenueID int64
	Created bool
}

// VenueReconciler matches incoming remote venues against local ones. The
// lookup order is fixed: persisted mapping, then case-insensitive exact name,
// then name plus city, then create. Mappings always win so that re-imports
// stay idempotent regardless of later local renames.
type VenueReconciler struct {
	venues          store.VenueStore
	mappings        store.VenueMappingStore
	fallbackVenueID int64
}

func NewVenueReconciler(venues store.VenueStore, mappings store.VenueMappingStore, fallbackVenueID int64) *VenueReconciler {
	return &VenueReconciler{
		venues:          venues,
		mappings:        mappings,
		fallbackVenueID: fallbackVenueID,
	}
}

// HandleVenue resolves a remote venue to a local venue id, creating the venue
// and its mapping when nothing matches. When dryRun is set no rows are
// written, including mapping rows for name matches; the resolution still
// reports what a live run would have done.
func (r *VenueReconciler) HandleVenue(ctx context.Context, remote *wordpress.RemoteVenue, dryRun bool) (VenueResolution, error) {
	if remote == nil || remote.Name.Raw() == "" {
		return VenueResolution{VenueID: r.fallbackVenueID}, nil
	}

	mapping, err := r.mappings.GetByWordPressVenueID(ctx, remote.ID)
	if err == nil {
		return VenueResolution{VenueID: mapping.VenueID}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return VenueResolution{}, fmt.Errorf("looking up venue mapping: %w", err)
	}

	name := common.CleanText(remote.Name.Text())
	city := common.CleanText(remote.City)

	if name != "" {
		match, err := r.findExisting(ctx, name, city)
		if err != nil {
			return VenueResolution{}, err
		}
		if match != nil {
			if !dryRun {
				if err := r.createMapping(ctx, remote, match.ID, name); err != nil {
					return VenueResolution{}, err
				}
			}
			slog.InfoContext(ctx, "venue matched",
				"venue_id", match.ID,
				"wordpress_venue_id", remote.ID,
				"name", name,
			)
			return VenueResolution{VenueID: match.ID}, nil
		}
	}

	if name == "" {
		name = fmt.Sprintf("WordPress Venue %d", remote.ID)
	}

	if dryRun {
		return VenueResolution{Created: true}, nil
	}

	venue := &model.Venue{
		ID:       id.New(),
		Name:     name,
		Address:  optionalText(remote.Address),
		City:     optionalText(remote.City),
		State:    optionalText(remote.Province),
		Zip:      optionalText(remote.Zip),
		IsActive: true,
	}
	if err := r.venues.Create(ctx, venue); err != nil {
		return VenueResolution{}, fmt.Errorf("creating venue: %w", err)
	}
	if err := r.createMapping(ctx, remote, venue.ID, name); err != nil {
		return VenueResolution{}, err
	}

	slog.InfoContext(ctx, "venue created from import",
		"venue_id", venue.ID,
		"wordpress_venue_id", remote.ID,
		"name", name,
	)
	return VenueResolution{VenueID: venue.ID, Created: true}, nil
}

func (r *VenueReconciler) findExisting(ctx context.Context, name, city string) (*model.Venue, error) {
	match, err := r.venues.FindByName(ctx, name)
	if err == nil {
		return match, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("matching venue by name: %w", err)
	}

	if city == "" {
		return nil, nil
	}
	match, err = r.venues.FindByNameAndCity(ctx, name, city)
	if err == nil {
		return match, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("matching venue by name and city: %w", err)
	}
	return nil, nil
}

func (r *VenueReconciler) createMapping(ctx context.Context, remote *wordpress.RemoteVenue, venueID int64, name string) error {
	mapping := &model.VenueMapping{
		ID:               id.New(),
		WordPressVenueID: remote.ID,
		VenueID:          venueID,
		WordPressName:    name,
		WordPressAddress: optionalText(remote.Address),
	}
	if err := r.mappings.Create(ctx, mapping); err != nil {
		return fmt.Errorf("creating venue mapping: %w", err)
	}
	return nil
}

func optionalText(s string) *string {
	cleaned := common.CleanText(s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
