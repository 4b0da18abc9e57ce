package dto

import (
	"time"

	"brewmeet.app/server/internal/model"
)

type CreateEventRequest struct {
	Theme          string     `json:"theme" binding:"required,min=1,max=255"`
	Description    *string    `json:"description,omitempty"`
	BannerImageURL *string    `json:"banner_image_url,omitempty" binding:"omitempty,url,max=2048"`
	DateTime       time.Time  `json:"date_time" binding:"required"`
	Status         string     `json:"status,omitempty" binding:"omitempty,oneof=draft scheduled published cancelled"`
	VenueID        *int64     `json:"venue_id,omitempty,string"`
	OrganizerID    *int64     `json:"organizer_id,omitempty,string"`
}

type UpdateEventRequest struct {
	Theme          *string    `json:"theme,omitempty" binding:"omitempty,min=1,max=255"`
	Description    *string    `json:"description,omitempty"`
	BannerImageURL *string    `json:"banner_image_url,omitempty" binding:"omitempty,url,max=2048"`
	DateTime       *time.Time `json:"date_time,omitempty"`
	Status         *string    `json:"status,omitempty" binding:"omitempty,oneof=draft scheduled published cancelled"`
	VenueID        *int64     `json:"venue_id,omitempty,string"`
	OrganizerID    *int64     `json:"organizer_id,omitempty,string"`
}

type EventResponse struct {
	ID                  int64      `json:"id,string"`
	Theme               string     `json:"theme"`
	Description         *string    `json:"description,omitempty"`
	BannerImageURL      *string    `json:"banner_image_url,omitempty"`
	DateTime            time.Time  `json:"date_time"`
	Status              string     `json:"status"`
	SyncStatus          string     `json:"sync_status"`
	VenueID             *int64     `json:"venue_id,omitempty,string"`
	OrganizerID         *int64     `json:"organizer_id,omitempty,string"`
	WordPressID         *int64     `json:"wordpress_id,omitempty"`
	WordPressURL        *string    `json:"wordpress_url,omitempty"`
	ImportedAt          *time.Time `json:"imported_at,omitempty"`
	LastSyncedAt        *time.Time `json:"last_synced_at,omitempty"`
	WordPressModifiedAt *time.Time `json:"wordpress_modified_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func ToEventResponse(e *model.Event) *EventResponse {
	return &EventResponse{
		ID:                  e.ID,
		Theme:               e.Theme,
		Description:         e.Description,
		BannerImageURL:      e.BannerImageURL,
		DateTime:            e.DateTime,
		Status:              string(e.Status),
		SyncStatus:          string(e.SyncStatus),
		VenueID:             e.VenueID,
		OrganizerID:         e.OrganizerID,
		WordPressID:         e.WordPressID,
		WordPressURL:        e.WordPressURL,
		ImportedAt:          e.ImportedAt,
		LastSyncedAt:        e.LastSyncedAt,
		WordPressModifiedAt: e.WordPressModifiedAt,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

type PublishEventRequest struct {
	Platforms []string `json:"platforms,omitempty"`
}
