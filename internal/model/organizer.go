package model

import "time"

type Organizer struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Website   *string   `json:"website,omitempty"`
	ID        int64     `json:"id"`
	// IsDefault marks the organizer auto-assigned to events lacking one.
	// At most one organizer may carry it; the store clears any existing
	// default in the same transaction that sets a new one.
	IsDefault bool `json:"is_default"`
}
