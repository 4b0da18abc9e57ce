package model

import (
	"encoding/json"
	"time"
)

type ImportJobStatus string

const (
	ImportJobStatusQueued     ImportJobStatus = "queued"
	ImportJobStatusProcessing ImportJobStatus = "processing"
	ImportJobStatusCompleted  ImportJobStatus = "completed"
	ImportJobStatusFailed     ImportJobStatus = "failed"
)

// ImportJob records one invocation of the import orchestrator. Jobs exist for
// observability bookkeeping; the import itself runs synchronously within the
// request.
type ImportJob struct {
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Options     json.RawMessage `json:"options,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       *string         `json:"error,omitempty"`
	JobID       string          `json:"job_id"`
	Status      ImportJobStatus `json:"status"`
	Progress    int             `json:"progress"`
	ID          int64           `json:"id"`
}
