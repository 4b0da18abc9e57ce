package model

import "time"

// ConflictType classifies a field-level disagreement between a local event
// and its WordPress counterpart. Venue and image conflicts are declared but
// not yet detected.
type ConflictType string

const (
	ConflictTypeContent  ConflictType = "content"
	ConflictTypeDateTime ConflictType = "datetime"
	ConflictTypeStatus   ConflictType = "status"
	ConflictTypeVenue    ConflictType = "venue"
	ConflictTypeImage    ConflictType = "image"
)

type ConflictResolution string

const (
	ConflictResolutionPending  ConflictResolution = "pending"
	ConflictResolutionResolved ConflictResolution = "resolved"
)

// ImportConflict is one detected field-level disagreement, persisted when the
// import runs with the manual strategy and cleared only by an explicit
// resolution action.
type ImportConflict struct {
	CreatedAt           time.Time          `json:"created_at"`
	LocalModifiedAt     *time.Time         `json:"local_modified_at,omitempty"`
	WordPressModifiedAt *time.Time         `json:"wordpress_modified_at,omitempty"`
	ResolvedAt          *time.Time         `json:"resolved_at,omitempty"`
	ResolvedBy          *string            `json:"resolved_by,omitempty"`
	LocalValue          string             `json:"local_value"`
	WordPressValue      string             `json:"wordpress_value"`
	Type                ConflictType       `json:"conflict_type"`
	Resolution          ConflictResolution `json:"resolution"`
	ID                  int64              `json:"id"`
	EventID             int64              `json:"event_id"`
	WordPressID         int64              `json:"wordpress_id"`
}

// ConflictWithEvent joins a pending conflict with a summary of the affected
// local event for review listings.
type ConflictWithEvent struct {
	Conflict      ImportConflict `json:"conflict"`
	EventTheme    string         `json:"event_theme"`
	EventDateTime time.Time      `json:"event_date_time"`
	EventStatus   EventStatus    `json:"event_status"`
}
