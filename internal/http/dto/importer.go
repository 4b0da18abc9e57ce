package dto

import (
	"encoding/json"
	"time"

	"brewmeet.app/server/internal/model"
	"brewmeet.app/server/internal/service"
)

type ImportEventsRequest struct {
	DateRange        *service.DateRange `json:"dateRange,omitempty"`
	IncludeImages    *bool              `json:"includeImages,omitempty"`
	ConflictStrategy string             `json:"conflictStrategy,omitempty" binding:"omitempty,oneof=local wordpress latest manual"`
	DryRun           bool               `json:"dryRun,omitempty"`
	StatusFilter     []string           `json:"statusFilter,omitempty"`
}

func (r ImportEventsRequest) ToOptions() service.ImportOptions {
	return service.ImportOptions{
		DateRange:        r.DateRange,
		IncludeImages:    r.IncludeImages,
		ConflictStrategy: service.ConflictStrategy(r.ConflictStrategy),
		DryRun:           r.DryRun,
		StatusFilter:     r.StatusFilter,
	}
}

type ImportVenuesRequest struct {
	DryRun bool `json:"dryRun,omitempty"`
}

type ResolveConflictRequest struct {
	Resolution string  `json:"resolution" binding:"required,oneof=local wordpress custom"`
	UseValue   *string `json:"useValue,omitempty"`
	ResolvedBy string  `json:"resolvedBy,omitempty" binding:"omitempty,max=255"`
}

type ConflictResponse struct {
	ID                  int64      `json:"id,string"`
	EventID             int64      `json:"event_id,string"`
	WordPressID         int64      `json:"wordpress_id"`
	ConflictType        string     `json:"conflict_type"`
	LocalValue          string     `json:"local_value"`
	WordPressValue      string     `json:"wordpress_value"`
	LocalModifiedAt     *time.Time `json:"local_modified_at,omitempty"`
	WordPressModifiedAt *time.Time `json:"wordpress_modified_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	EventTheme          string     `json:"event_theme"`
	EventDateTime       time.Time  `json:"event_date_time"`
	EventStatus         string     `json:"event_status"`
}

func ToConflictResponse(c model.ConflictWithEvent) ConflictResponse {
	return ConflictResponse{
		ID:                  c.Conflict.ID,
		EventID:             c.Conflict.EventID,
		WordPressID:         c.Conflict.WordPressID,
		ConflictType:        string(c.Conflict.Type),
		LocalValue:          c.Conflict.LocalValue,
		WordPressValue:      c.Conflict.WordPressValue,
		LocalModifiedAt:     c.Conflict.LocalModifiedAt,
		WordPressModifiedAt: c.Conflict.WordPressModifiedAt,
		CreatedAt:           c.Conflict.CreatedAt,
		EventTheme:          c.EventTheme,
		EventDateTime:       c.EventDateTime,
		EventStatus:         string(c.EventStatus),
	}
}

type ImportJobResponse struct {
	JobID       string          `json:"jobId"`
	Status      string          `json:"status"`
	Progress    int             `json:"progress"`
	Options     json.RawMessage `json:"options,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       *string         `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

func ToImportJobResponse(j *model.ImportJob) *ImportJobResponse {
	return &ImportJobResponse{
		JobID:       j.JobID,
		Status:      string(j.Status),
		Progress:    j.Progress,
		Options:     j.Options,
		Result:      j.Result,
		Error:       j.Error,
		CreatedAt:   j.CreatedAt,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
	}
}
