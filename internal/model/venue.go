package model

import "time"

type Venue struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	City      *string   `json:"city,omitempty"`
	State     *string   `json:"state,omitempty"`
	Zip       *string   `json:"zip,omitempty"`
	ID        int64     `json:"id"`
	IsActive  bool      `json:"is_active"`
}

// VenueMapping links a remote WordPress venue to a local venue. Mappings are
// created exactly once and never updated; re-imports resolve through them
// before any name matching runs.
type VenueMapping struct {
	CreatedAt        time.Time `json:"created_at"`
	WordPressName    string    `json:"wordpress_name"`
	WordPressAddress *string   `json:"wordpress_address,omitempty"`
	ID               int64     `json:"id"`
	WordPressVenueID int64     `json:"wordpress_venue_id"`
	VenueID          int64     `json:"venue_id"`
}
