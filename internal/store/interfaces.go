package store

import (
	"context"
	"errors"

	"brewmeet.app/server/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// EventStore defines the contract for event data access
type EventStore interface {
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	GetByWordPressID(ctx context.Context, wordpressID int64) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, event *model.Event) error
	// UpdateColumns applies a partial update. Column names are checked
	// against an allow-list; unknown columns are rejected, never
	// interpolated.
	UpdateColumns(ctx context.Context, id int64, cols map[string]any) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int32) ([]model.Event, error)
}

// VenueStore defines the contract for venue data access
type VenueStore interface {
	GetByID(ctx context.Context, id int64) (*model.Venue, error)
	// FindByName matches case-insensitively on the exact name.
	FindByName(ctx context.Context, name string) (*model.Venue, error)
	FindByNameAndCity(ctx context.Context, name, city string) (*model.Venue, error)
	Create(ctx context.Context, venue *model.Venue) error
	Update(ctx context.Context, venue *model.Venue) error
	Deactivate(ctx context.Context, id int64) error // soft delete
	List(ctx context.Context, limit, offset int32) ([]model.Venue, error)
}

// VenueMappingStore defines the contract for WordPress venue mapping access.
// Mappings are write-once; there is no update method.
type VenueMappingStore interface {
	GetByWordPressVenueID(ctx context.Context, wordpressVenueID int64) (*model.VenueMapping, error)
	Create(ctx context.Context, mapping *model.VenueMapping) error
}

// OrganizerStore defines the contract for organizer data access
type OrganizerStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organizer, error)
	GetDefault(ctx context.Context) (*model.Organizer, error)
	Create(ctx context.Context, organizer *model.Organizer) error
	Update(ctx context.Context, organizer *model.Organizer) error
	// ClearDefault drops the default flag from every organizer. Callers
	// setting a new default run this first, inside the same transaction.
	ClearDefault(ctx context.Context) error
	SetDefault(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Organizer, error)
}

// ImportConflictStore defines the contract for import conflict data access
type ImportConflictStore interface {
	GetByID(ctx context.Context, id int64) (*model.ImportConflict, error)
	Create(ctx context.Context, conflict *model.ImportConflict) error
	ListPending(ctx context.Context) ([]model.ConflictWithEvent, error)
	MarkResolved(ctx context.Context, id int64, resolvedBy string) error
	CountPendingForEvent(ctx context.Context, eventID int64) (int64, error)
}

// ImportJobStore defines the contract for import job bookkeeping
type ImportJobStore interface {
	GetByJobID(ctx context.Context, jobID string) (*model.ImportJob, error)
	Create(ctx context.Context, job *model.ImportJob) error
	UpdateProgress(ctx context.Context, jobID string, progress int) error
	MarkProcessing(ctx context.Context, jobID string) error
	Complete(ctx context.Context, jobID string, result []byte) error
	Fail(ctx context.Context, jobID string, errMsg string) error
}
