package store

import (
	"context"
	"errors"

	"brewmeet.app/server/core/db"
	"brewmeet.app/server/internal/model"
	"github.com/jackc/pgx/v5"
)

type venueMappingStore struct {
	q db.Querier
}

func newVenueMappingStore(q db.Querier) VenueMappingStore {
	return &venueMappingStore{q: q}
}

func (s *venueMappingStore) GetByWordPressVenueID(ctx context.Context, wordpressVenueID int64) (*model.VenueMapping, error) {
	row := s.q.QueryRow(ctx, `
		SELECT id, wordpress_venue_id, venue_id, wordpress_name, wordpress_address, created_at
		FROM wordpress_venues WHERE wordpress_venue_id = $1`,
		wordpressVenueID)

	var m model.VenueMapping
	err := row.Scan(&m.ID, &m.WordPressVenueID, &m.VenueID, &m.WordPressName, &m.WordPressAddress, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *venueMappingStore) Create(ctx context.Context, mapping *model.VenueMapping) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO wordpress_venues (id, wordpress_venue_id, venue_id, wordpress_name, wordpress_address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, wordpress_venue_id, venue_id, wordpress_name, wordpress_address, created_at`,
		mapping.ID, mapping.WordPressVenueID, mapping.VenueID, mapping.WordPressName, mapping.WordPressAddress,
	)

	var m model.VenueMapping
	if err := row.Scan(&m.ID, &m.WordPressVenueID, &m.VenueID, &m.WordPressName, &m.WordPressAddress, &m.CreatedAt); err != nil {
		return err
	}
	*mapping = m
	return nil
}
