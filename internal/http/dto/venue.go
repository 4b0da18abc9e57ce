package dto

import (
	"time"

	"brewmeet.app/server/internal/model"
)

type VenueRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Address *string `json:"address,omitempty" binding:"omitempty,max=512"`
	City    *string `json:"city,omitempty" binding:"omitempty,max=255"`
	State   *string `json:"state,omitempty" binding:"omitempty,max=64"`
	Zip     *string `json:"zip,omitempty" binding:"omitempty,max=16"`
}

type VenueResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	City      *string   `json:"city,omitempty"`
	State     *string   `json:"state,omitempty"`
	Zip       *string   `json:"zip,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToVenueResponse(v *model.Venue) *VenueResponse {
	return &VenueResponse{
		ID:        v.ID,
		Name:      v.Name,
		Address:   v.Address,
		City:      v.City,
		State:     v.State,
		Zip:       v.Zip,
		IsActive:  v.IsActive,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
