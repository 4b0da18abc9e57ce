package store

import (
	"context"
	"errors"

	"brewmeet.app/server/core/db"
	"brewmeet.app/server/internal/model"
	"github.com/jackc/pgx/v5"
)

const organizerColumns = `id, name, email, phone, website, is_default, created_at, updated_at`

type organizerStore struct {
	q db.Querier
}

func newOrganizerStore(q db.Querier) OrganizerStore {
	return &organizerStore{q: q}
}

func (s *organizerStore) GetByID(ctx context.Context, id int64) (*model.Organizer, error) {
	row := s.q.QueryRow(ctx, `SELECT `+organizerColumns+` FROM organizers WHERE id = $1`, id)
	return scanOrganizer(row)
}

func (s *organizerStore) GetDefault(ctx context.Context) (*model.Organizer, error) {
	row := s.q.QueryRow(ctx, `SELECT `+organizerColumns+` FROM organizers WHERE is_default LIMIT 1`)
	return scanOrganizer(row)
}

func (s *organizerStore) Create(ctx context.Context, organizer *model.Organizer) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO organizers (id, name, email, phone, website, is_default)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+organizerColumns,
		organizer.ID, organizer.Name, organizer.Email, organizer.Phone, organizer.Website, organizer.IsDefault,
	)

	created, err := scanOrganizer(row)
	if err != nil {
		return err
	}
	*organizer = *created
	return nil
}

func (s *organizerStore) Update(ctx context.Context, organizer *model.Organizer) error {
	row := s.q.QueryRow(ctx, `
		UPDATE organizers
		SET name = $2, email = $3, phone = $4, website = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+organizerColumns,
		organizer.ID, organizer.Name, organizer.Email, organizer.Phone, organizer.Website,
	)

	updated, err := scanOrganizer(row)
	if err != nil {
		return err
	}
	*organizer = *updated
	return nil
}

func (s *organizerStore) ClearDefault(ctx context.Context) error {
	_, err := s.q.Exec(ctx, `UPDATE organizers SET is_default = false, updated_at = now() WHERE is_default`)
	return err
}

func (s *organizerStore) SetDefault(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `UPDATE organizers SET is_default = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *organizerStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM organizers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *organizerStore) List(ctx context.Context) ([]model.Organizer, error) {
	rows, err := s.q.Query(ctx, `SELECT `+organizerColumns+` FROM organizers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var organizers []model.Organizer
	for rows.Next() {
		var o model.Organizer
		if err := rows.Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.Website, &o.IsDefault, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		organizers = append(organizers, o)
	}
	return organizers, rows.Err()
}

func scanOrganizer(row pgx.Row) (*model.Organizer, error) {
	var o model.Organizer
	err := row.Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.Website, &o.IsDefault, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
