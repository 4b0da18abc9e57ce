package store

import (
	"context"
	"errors"

	"brewmeet.app/server/core/db"
	"brewmeet.app/server/internal/model"
	"github.com/jackc/pgx/v5"
)

const venueColumns = `id, name, address, city, state, zip, is_active, created_at, updated_at`

type venueStore struct {
	q db.Querier
}

func newVenueStore(q db.Querier) VenueStore {
	return &venueStore{q: q}
}

func (s *venueStore) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	row := s.q.QueryRow(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = $1`, id)
	return scanVenue(row)
}

func (s *venueStore) FindByName(ctx context.Context, name string) (*model.Venue, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+venueColumns+` FROM venues WHERE lower(name) = lower($1) AND is_active ORDER BY id LIMIT 1`,
		name)
	return scanVenue(row)
}

func (s *venueStore) FindByNameAndCity(ctx context.Context, name, city string) (*model.Venue, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+venueColumns+` FROM venues
		 WHERE lower(name) = lower($1) AND lower(coalesce(city, '')) = lower($2) AND is_active
		 ORDER BY id LIMIT 1`,
		name, city)
	return scanVenue(row)
}

func (s *venueStore) Create(ctx context.Context, venue *model.Venue) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO venues (id, name, address, city, state, zip, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+venueColumns,
		venue.ID, venue.Name, venue.Address, venue.City, venue.State, venue.Zip, venue.IsActive,
	)
	created, err := scanVenue(row)
	if err != nil {
		return err
	}
	*venue = *created
	return nil
}

func (s *venueStore) Update(ctx context.Context, venue *model.Venue) error {
	row := s.q.QueryRow(ctx, `
		UPDATE venues SET name = $2, address = $3, city = $4, state = $5, zip = $6,
			is_active = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+venueColumns,
		venue.ID, venue.Name, venue.Address, venue.City, venue.State, venue.Zip, venue.IsActive,
	)
	updated, err := scanVenue(row)
	if err != nil {
		return err
	}
	*venue = *updated
	return nil
}

func (s *venueStore) Deactivate(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE venues SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *venueStore) List(ctx context.Context, limit, offset int32) ([]model.Venue, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+venueColumns+` FROM venues WHERE is_active ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []model.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, *v)
	}
	return venues, rows.Err()
}

func scanVenue(row pgx.Row) (*model.Venue, error) {
	var v model.Venue
	err := row.Scan(
		&v.ID, &v.Name, &v.Address, &v.City, &v.State, &v.Zip,
		&v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}
