package store

import (
	"context"
	"errors"

	"brewmeet.app/server/core/db"
	"brewmeet.app/server/internal/model"
	"github.com/jackc/pgx/v5"
)

const importJobColumns = `id, job_id, status, progress, options, result, error, started_at, completed_at, created_at`

type importJobStore struct {
	q db.Querier
}

func newImportJobStore(q db.Querier) ImportJobStore {
	return &importJobStore{q: q}
}

func (s *importJobStore) GetByJobID(ctx context.Context, jobID string) (*model.ImportJob, error) {
	row := s.q.QueryRow(ctx, `SELECT `+importJobColumns+` FROM wordpress_imports WHERE job_id = $1`, jobID)
	return scanImportJob(row)
}

func (s *importJobStore) Create(ctx context.Context, job *model.ImportJob) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO wordpress_imports (id, job_id, status, progress, options)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+importJobColumns,
		job.ID, job.JobID, job.Status, job.Progress, job.Options,
	)

	created, err := scanImportJob(row)
	if err != nil {
		return err
	}
	*job = *created
	return nil
}

func (s *importJobStore) MarkProcessing(ctx context.Context, jobID string) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE wordpress_imports SET status = $2, started_at = now() WHERE job_id = $1`,
		jobID, model.ImportJobStatusProcessing)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *importJobStore) UpdateProgress(ctx context.Context, jobID string, progress int) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE wordpress_imports SET progress = $2 WHERE job_id = $1`,
		jobID, progress)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *importJobStore) Complete(ctx context.Context, jobID string, result []byte) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE wordpress_imports
		SET status = $2, progress = 100, result = $3, completed_at = now()
		WHERE job_id = $1`,
		jobID, model.ImportJobStatusCompleted, result)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *importJobStore) Fail(ctx context.Context, jobID string, errMsg string) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE wordpress_imports
		SET status = $2, error = $3, completed_at = now()
		WHERE job_id = $1`,
		jobID, model.ImportJobStatusFailed, errMsg)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanImportJob(row pgx.Row) (*model.ImportJob, error) {
	var j model.ImportJob
	err := row.Scan(&j.ID, &j.JobID, &j.Status, &j.Progress, &j.Options, &j.Result,
		&j.Error, &j.StartedAt, &j.CompletedAt, &j.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}
