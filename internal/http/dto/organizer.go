package dto

import (
	"time"

	"brewmeet.app/server/internal/model"
)

type OrganizerRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email,max=255"`
	Phone   *string `json:"phone,omitempty" binding:"omitempty,max=32"`
	Website *string `json:"website,omitempty" binding:"omitempty,url,max=2048"`
}

type OrganizerResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Website   *string   `json:"website,omitempty"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToOrganizerResponse(o *model.Organizer) *OrganizerResponse {
	return &OrganizerResponse{
		ID:        o.ID,
		Name:      o.Name,
		Email:     o.Email,
		Phone:     o.Phone,
		Website:   o.Website,
		IsDefault: o.IsDefault,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
