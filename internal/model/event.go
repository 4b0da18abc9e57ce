package model

import "time"

// EventStatus represents the lifecycle state of a meetup event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
)

// SyncStatus tracks how a WordPress-imported event relates to its remote
// counterpart.
type SyncStatus string

const (
	SyncStatusSynced   SyncStatus = "synced"
	SyncStatusPending  SyncStatus = "pending"
	SyncStatusConflict SyncStatus = "conflict"
)

type Event struct {
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
	DateTime            time.Time   `json:"date_time"`
	ImportedAt          *time.Time  `json:"imported_at,omitempty"`
	LastSyncedAt        *time.Time  `json:"last_synced_at,omitempty"`
	WordPressModifiedAt *time.Time  `json:"wordpress_modified_at,omitempty"`
	Description         *string     `json:"description,omitempty"`
	BannerImageURL      *string     `json:"banner_image_url,omitempty"`
	WordPressURL        *string     `json:"wordpress_url,omitempty"`
	Theme               string      `json:"theme"`
	Status              EventStatus `json:"status"`
	SyncStatus          SyncStatus  `json:"sync_status"`
	ID                  int64       `json:"id"`
	VenueID             *int64      `json:"venue_id,omitempty"`
	OrganizerID         *int64      `json:"organizer_id,omitempty"`
	WordPressID         *int64      `json:"wordpress_id,omitempty"`
}

// IsImported reports whether this event originated from a WordPress import.
func (e *Event) IsImported() bool {
	return e.WordPressID != nil
}
