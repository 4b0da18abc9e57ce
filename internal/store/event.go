package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brewmeet.app/server/core/db"
	"brewmeet.app/server/internal/model"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, theme, description, banner_image_url, date_time, status, sync_status,
	venue_id, organizer_id, wordpress_id, wordpress_url,
	imported_at, last_synced_at, wordpress_modified_at, created_at, updated_at`

// eventUpdatableColumns is the allow-list for partial updates. Column names
// from request bodies are never interpolated into SQL directly.
var eventUpdatableColumns = map[string]bool{
	"theme":            true,
	"description":      true,
	"banner_image_url": true,
	"date_time":        true,
	"status":           true,
	"venue_id":         true,
	"organizer_id":     true,
	// Sync bookkeeping, written by the import pipeline only.
	"sync_status":           true,
	"last_synced_at":        true,
	"wordpress_modified_at": true,
}

type eventStore struct {
	q db.Querier
}

func newEventStore(q db.Querier) EventStore {
	return &eventStore{q: q}
}

func (s *eventStore) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	row := s.q.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	return scanEvent(row)
}

func (s *eventStore) GetByWordPressID(ctx context.Context, wordpressID int64) (*model.Event, error) {
	row := s.q.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE wordpress_id = $1`, wordpressID)
	return scanEvent(row)
}

func (s *eventStore) Create(ctx context.Context, event *model.Event) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO events (
			id, theme, description, banner_image_url, date_time, status, sync_status,
			venue_id, organizer_id, wordpress_id, wordpress_url,
			imported_at, last_synced_at, wordpress_modified_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+eventColumns,
		event.ID, event.Theme, event.Description, event.BannerImageURL,
		event.DateTime, event.Status, event.SyncStatus,
		event.VenueID, event.OrganizerID, event.WordPressID, event.WordPressURL,
		event.ImportedAt, event.LastSyncedAt, event.WordPressModifiedAt,
	)
	created, err := scanEvent(row)
	if err != nil {
		return err
	}
	*event = *created
	return nil
}

func (s *eventStore) Update(ctx context.Context, event *model.Event) error {
	row := s.q.QueryRow(ctx, `
		UPDATE events SET
			theme = $2, description = $3, banner_image_url = $4, date_time = $5,
			status = $6, sync_status = $7, venue_id = $8, organizer_id = $9,
			wordpress_url = $10, last_synced_at = $11, wordpress_modified_at = $12,
			updated_at = now()
		WHERE id = $1
		RETURNING `+eventColumns,
		event.ID, event.Theme, event.Description, event.BannerImageURL, event.DateTime,
		event.Status, event.SyncStatus, event.VenueID, event.OrganizerID,
		event.WordPressURL, event.LastSyncedAt, event.WordPressModifiedAt,
	)
	updated, err := scanEvent(row)
	if err != nil {
		return err
	}
	*event = *updated
	return nil
}

func (s *eventStore) UpdateColumns(ctx context.Context, id int64, cols map[string]any) error {
	if len(cols) == 0 {
		return nil
	}

	assignments := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	args = append(args, id)
	for col, val := range cols {
		if !eventUpdatableColumns[col] {
			return fmt.Errorf("column %q is not updatable", col)
		}
		args = append(args, val)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	assignments = append(assignments, "updated_at = now()")

	tag, err := s.q.Exec(ctx,
		`UPDATE events SET `+strings.Join(assignments, ", ")+` WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *eventStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *eventStore) List(ctx context.Context, limit, offset int32) ([]model.Event, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY date_time DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var ev model.Event
	err := row.Scan(
		&ev.ID, &ev.Theme, &ev.Description, &ev.BannerImageURL,
		&ev.DateTime, &ev.Status, &ev.SyncStatus,
		&ev.VenueID, &ev.OrganizerID, &ev.WordPressID, &ev.WordPressURL,
		&ev.ImportedAt, &ev.LastSyncedAt, &ev.WordPressModifiedAt,
		&ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}
