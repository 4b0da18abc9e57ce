package store

import (
	"context"
	"errors"

	"brewmeet.app/server/core/db"
	"brewmeet.app/server/internal/model"
	"github.com/jackc/pgx/v5"
)

const conflictColumns = `id, event_id, wordpress_id, conflict_type, local_value, wordpress_value,
	local_modified_at, wordpress_modified_at, resolution, resolved_by, resolved_at, created_at`

type importConflictStore struct {
	q db.Querier
}

func newImportConflictStore(q db.Querier) ImportConflictStore {
	return &importConflictStore{q: q}
}

func (s *importConflictStore) GetByID(ctx context.Context, id int64) (*model.ImportConflict, error) {
	row := s.q.QueryRow(ctx, `SELECT `+conflictColumns+` FROM import_conflicts WHERE id = $1`, id)
	return scanConflict(row)
}

func (s *importConflictStore) Create(ctx context.Context, conflict *model.ImportConflict) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO import_conflicts
			(id, event_id, wordpress_id, conflict_type, local_value, wordpress_value,
			 local_modified_at, wordpress_modified_at, resolution)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+conflictColumns,
		conflict.ID, conflict.EventID, conflict.WordPressID, conflict.Type,
		conflict.LocalValue, conflict.WordPressValue,
		conflict.LocalModifiedAt, conflict.WordPressModifiedAt, conflict.Resolution,
	)

	created, err := scanConflict(row)
	if err != nil {
		return err
	}
	*conflict = *created
	return nil
}

func (s *importConflictStore) ListPending(ctx context.Context) ([]model.ConflictWithEvent, error) {
	rows, err := s.q.Query(ctx, `
		SELECT c.id, c.event_id, c.wordpress_id, c.conflict_type, c.local_value, c.wordpress_value,
			c.local_modified_at, c.wordpress_modified_at, c.resolution, c.resolved_by, c.resolved_at, c.created_at,
			e.theme, e.date_time, e.status
		FROM import_conflicts c
		JOIN events e ON e.id = c.event_id
		WHERE c.resolution = $1
		ORDER BY c.created_at, c.id`,
		model.ConflictResolutionPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ConflictWithEvent
	for rows.Next() {
		var cwe model.ConflictWithEvent
		c := &cwe.Conflict
		err := rows.Scan(&c.ID, &c.EventID, &c.WordPressID, &c.Type, &c.LocalValue, &c.WordPressValue,
			&c.LocalModifiedAt, &c.WordPressModifiedAt, &c.Resolution, &c.ResolvedBy, &c.ResolvedAt, &c.CreatedAt,
			&cwe.EventTheme, &cwe.EventDateTime, &cwe.EventStatus)
		if err != nil {
			return nil, err
		}
		out = append(out, cwe)
	}
	return out, rows.Err()
}

func (s *importConflictStore) MarkResolved(ctx context.Context, id int64, resolvedBy string) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE import_conflicts
		SET resolution = $2, resolved_by = $3, resolved_at = now()
		WHERE id = $1 AND resolution = $4`,
		id, model.ConflictResolutionResolved, resolvedBy, model.ConflictResolutionPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *importConflictStore) CountPendingForEvent(ctx context.Context, eventID int64) (int64, error) {
	row := s.q.QueryRow(ctx, `
		SELECT count(*) FROM import_conflicts WHERE event_id = $1 AND resolution = $2`,
		eventID, model.ConflictResolutionPending)

	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanConflict(row pgx.Row) (*model.ImportConflict, error) {
	var c model.ImportConflict
	err := row.Scan(&c.ID, &c.EventID, &c.WordPressID, &c.Type, &c.LocalValue, &c.WordPressValue,
		&c.LocalModifiedAt, &c.WordPressModifiedAt, &c.Resolution, &c.ResolvedBy, &c.ResolvedAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
