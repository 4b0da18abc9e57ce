package handler_test

import (
	"context"

	"brewmeet.app/server/internal/model"
	"brewmeet.app/server/internal/service"
)

type mockImportService struct {
	importEventsFn     func(ctx context.Context, opts service.ImportOptions) (string, *service.ImportResult, error)
	importVenuesFn     func(ctx context.Context, dryRun bool) (*service.VenueImportResult, error)
	importOrganizerFn  func(ctx context.Context) (*service.OrganizerImportResult, error)
	pendingConflictsFn func(ctx context.Context) ([]model.ConflictWithEvent, error)
	resolveConflictFn  func(ctx context.Context, conflictID int64, req service.ResolveConflictRequest) (*model.Event, error)
	jobFn              func(ctx context.Context, jobID string) (*model.ImportJob, error)
}

func (m *mockImportService) ImportEvents(ctx context.Context, opts service.ImportOptions) (string, *service.ImportResult, error) {
	if m.importEventsFn != nil {
		return m.importEventsFn(ctx, opts)
	}
	return "", &service.ImportResult{}, nil
}

func (m *mockImportService) ImportVenues(ctx context.Context, dryRun bool) (*service.VenueImportResult, error) {
	if m.importVenuesFn != nil {
		return m.importVenuesFn(ctx, dryRun)
	}
	return &service.VenueImportResult{}, nil
}

func (m *mockImportService) ImportDefaultOrganizer(ctx context.Context) (*service.OrganizerImportResult, error) {
	if m.importOrganizerFn != nil {
		return m.importOrganizerFn(ctx)
	}
	return &service.OrganizerImportResult{}, nil
}

func (m *mockImportService) PendingConflicts(ctx context.Context) ([]model.ConflictWithEvent, error) {
	if m.pendingConflictsFn != nil {
		return m.pendingConflictsFn(ctx)
	}
	return nil, nil
}

func (m *mockImportService) ResolveConflict(ctx context.Context, conflictID int64, req service.ResolveConflictRequest) (*model.Event, error) {
	if m.resolveConflictFn != nil {
		return m.resolveConflictFn(ctx, conflictID, req)
	}
	return &model.Event{}, nil
}

func (m *mockImportService) Job(ctx context.Context, jobID string) (*model.ImportJob, error) {
	if m.jobFn != nil {
		return m.jobFn(ctx, jobID)
	}
	return &model.ImportJob{}, nil
}
