package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"brewmeet.app/server/common/id"
	"brewmeet.app/server/common/logger"
	"brewmeet.app/server/internal/model"
	"brewmeet.app/server/internal/store"
	"brewmeet.app/server/internal/wordpress"
	"github.com/google/uuid"
)

const (
	defaultRangeBack  = 6 * 30 * 24 * time.Hour
	defaultRangeAhead = 12 * 30 * 24 * time.Hour
)

var (
	ErrConflictNotFound   = errors.New("conflict not found")
	ErrConflictResolved   = errors.New("conflict already resolved")
	ErrJobNotFound        = errors.New("import job not found")
	ErrInvalidStrategy    = errors.New("invalid conflict strategy")
	ErrInvalidResolution  = errors.New("invalid resolution choice")
	ErrMissingCustomValue = errors.New("custom resolution requires a value")
)

// WordPressClient is the paged fetch contract the orchestrator consumes.
type WordPressClient interface {
	FetchEventsPage(ctx context.Context, page int, q wordpress.EventQuery) ([]wordpress.RemoteEvent, error)
	FetchVenuesPage(ctx context.Context, page int) ([]wordpress.RemoteVenue, error)
	PageDelay() time.Duration
}

// DateRange bounds which remote events an import considers.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// ImportOptions configures one importEvents run. Zero values mean defaults:
// six months back to twelve months ahead, images included, manual strategy,
// publish and draft statuses.
type ImportOptions struct {
	DateRange        *DateRange       `json:"dateRange,omitempty"`
	IncludeImages    *bool            `json:"includeImages,omitempty"`
	ConflictStrategy ConflictStrategy `json:"conflictStrategy,omitempty"`
	DryRun           bool             `json:"dryRun,omitempty"`
	StatusFilter     []string         `json:"statusFilter,omitempty"`
}

func (o ImportOptions) withDefaults() ImportOptions {
	if o.DateRange == nil {
		from := time.Now().Add(-defaultRangeBack)
		to := time.Now().Add(defaultRangeAhead)
		o.DateRange = &DateRange{From: &from, To: &to}
	}
	if o.IncludeImages == nil {
		t := true
		o.IncludeImages = &t
	}
	if o.ConflictStrategy == "" {
		o.ConflictStrategy = StrategyManual
	}
	if len(o.StatusFilter) == 0 {
		o.StatusFilter = []string{"publish", "draft"}
	}
	return o
}

// ImportError records one isolated per-record failure.
type ImportError struct {
	WordPressID int64  `json:"wordpressId"`
	Message     string `json:"message"`
}

// ImportResult aggregates one importEvents run. Every remote record lands in
// exactly one of imported, updated, skipped, or conflicts; errors is the
// overflow for records that could not be processed at all.
type ImportResult struct {
	Imported         int           `json:"imported"`
	Updated          int           `json:"updated"`
	Skipped          int           `json:"skipped"`
	Conflicts        int           `json:"conflicts"`
	Errors           []ImportError `json:"errors"`
	VenuesCreated    int           `json:"venuesCreated"`
	ImagesDownloaded int           `json:"imagesDownloaded"`
}

// VenueImportResult aggregates one importVenues run.
type VenueImportResult struct {
	Imported int           `json:"imported"`
	Matched  int           `json:"matched"`
	Errors   []ImportError `json:"errors"`
}

// OrganizerAction names which branch importDefaultOrganizer took.
type OrganizerAction string

const (
	OrganizerActionExists   OrganizerAction = "exists"
	OrganizerActionImported OrganizerAction = "imported"
	OrganizerActionCreated  OrganizerAction = "created"
)

type OrganizerImportResult struct {
	Action    OrganizerAction  `json:"action"`
	Organizer *model.Organizer `json:"organizer"`
	Message   string           `json:"message"`
}

// ResolveConflictRequest applies a reviewer's decision to one pending conflict.
type ResolveConflictRequest struct {
	// Resolution is one of local, wordpress, custom.
	Resolution string  `json:"resolution"`
	UseValue   *string `json:"useValue,omitempty"`
	ResolvedBy string  `json:"resolvedBy,omitempty"`
}

type ImportService interface {
	ImportEvents(ctx context.Context, opts ImportOptions) (string, *ImportResult, error)
	ImportVenues(ctx context.Context, dryRun bool) (*VenueImportResult, error)
	ImportDefaultOrganizer(ctx context.Context) (*OrganizerImportResult, error)
	PendingConflicts(ctx context.Context) ([]model.ConflictWithEvent, error)
	ResolveConflict(ctx context.Context, conflictID int64, req ResolveConflictRequest) (*model.Event, error)
	Job(ctx context.Context, jobID string) (*model.ImportJob, error)
}

type importService struct {
	wp         WordPressClient
	stores     StoreProvider
	txRunner   TxRunner
	reconciler *VenueReconciler
}

func NewImportService(wp WordPressClient, stores StoreProvider, txRunner TxRunner, fallbackVenueID int64) ImportService {
	return &importService{
		wp:         wp,
		stores:     stores,
		txRunner:   txRunner,
		reconciler: NewVenueReconciler(stores.Venues(), stores.VenueMappings(), fallbackVenueID),
	}
}

// ImportEvents runs the full pipeline synchronously: fetch every page, then
// reconcile records one at a time. The job row exists for observability; the
// caller blocks until the run finishes.
func (s *importService) ImportEvents(ctx context.Context, opts ImportOptions) (string, *ImportResult, error) {
	opts = opts.withDefaults()
	if !opts.ConflictStrategy.Valid() {
		return "", nil, ErrInvalidStrategy
	}

	sc := logger.StartSpan(ctx, "import.events")
	defer sc.End()
	ctx = sc.Context()

	jobID := uuid.NewString()
	ctx = logger.WithLogFields(ctx, logger.LogFields{JobID: &jobID, Component: "wordpress-import"})

	optionsJSON, err := json.Marshal(opts)
	if err != nil {
		return "", nil, fmt.Errorf("encoding import options: %w", err)
	}
	job := &model.ImportJob{
		ID:      id.New(),
		JobID:   jobID,
		Status:  model.ImportJobStatusQueued,
		Options: optionsJSON,
	}
	if err := s.stores.ImportJobs().Create(ctx, job); err != nil {
		return "", nil, fmt.Errorf("creating import job: %w", err)
	}

	result, err := s.runEventImport(ctx, jobID, opts)
	if err != nil {
		sc.RecordError(err)
		if failErr := s.stores.ImportJobs().Fail(ctx, jobID, err.Error()); failErr != nil {
			slog.ErrorContext(ctx, "marking import job failed", "error", failErr)
		}
		return jobID, nil, err
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return jobID, nil, fmt.Errorf("encoding import result: %w", err)
	}
	if err := s.stores.ImportJobs().Complete(ctx, jobID, resultJSON); err != nil {
		return jobID, nil, fmt.Errorf("completing import job: %w", err)
	}

	slog.InfoContext(ctx, "event import finished",
		"imported", result.Imported,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"conflicts", result.Conflicts,
		"errors", len(result.Errors),
		"venues_created", result.VenuesCreated,
	)
	return jobID, result, nil
}

func (s *importService) runEventImport(ctx context.Context, jobID string, opts ImportOptions) (*ImportResult, error) {
	if err := s.stores.ImportJobs().MarkProcessing(ctx, jobID); err != nil {
		return nil, fmt.Errorf("starting import job: %w", err)
	}

	query := wordpress.EventQuery{Statuses: opts.StatusFilter}
	if opts.DateRange != nil {
		query.StartAfter = opts.DateRange.From
		query.StartBefore = opts.DateRange.To
	}

	remote, err := s.fetchAllEvents(ctx, query)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "fetched remote events", "count", len(remote), "dry_run", opts.DryRun)

	result := &ImportResult{Errors: []ImportError{}}
	total := len(remote)
	for i := range remote {
		if err := s.importOne(ctx, &remote[i], opts, result); err != nil {
			result.Errors = append(result.Errors, ImportError{
				WordPressID: remote[i].ID,
				Message:     err.Error(),
			})
			slog.WarnContext(ctx, "event import record failed",
				"wordpress_id", remote[i].ID,
				"error", err,
			)
		}

		progress := int(math.Round(float64(i+1) / float64(total) * 100))
		if err := s.stores.ImportJobs().UpdateProgress(ctx, jobID, progress); err != nil {
			slog.WarnContext(ctx, "updating job progress", "error", err)
		}
	}

	return result, nil
}

// importOne processes a single remote event. Errors returned here are
// isolated by the caller and never abort the batch.
func (s *importService) importOne(ctx context.Context, remote *wordpress.RemoteEvent, opts ImportOptions, result *ImportResult) error {
	startDate, err := wordpress.ParseTime(remote.StartDate)
	if err != nil {
		return fmt.Errorf("parsing start date: %w", err)
	}

	local, err := s.stores.Events().GetByWordPressID(ctx, remote.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("looking up event: %w", err)
	}

	if local == nil {
		return s.createImported(ctx, remote, startDate, opts, result)
	}
	return s.reconcileExisting(ctx, local, remote, opts, result)
}

func (s *importService) createImported(ctx context.Context, remote *wordpress.RemoteEvent, startDate time.Time, opts ImportOptions, result *ImportResult) error {
	venue, err := s.reconciler.HandleVenue(ctx, remote.Venue, opts.DryRun)
	if err != nil {
		return err
	}
	if venue.Created {
		result.VenuesCreated++
	}

	now := time.Now()
	event := &model.Event{
		ID:                  id.New(),
		Theme:               remote.Title.Text(),
		Status:              MapRemoteStatus(remote.Status),
		DateTime:            startDate,
		SyncStatus:          model.SyncStatusSynced,
		WordPressID:         &remote.ID,
		ImportedAt:          &now,
		LastSyncedAt:        &now,
		WordPressModifiedAt: wordpress.ParseTimePtr(remote.Modified),
	}
	if desc := remote.Description.PlainText(); desc != "" {
		event.Description = &desc
	}
	if remote.URL != "" {
		url := remote.URL
		event.WordPressURL = &url
	}
	if venue.VenueID != 0 {
		venueID := venue.VenueID
		event.VenueID = &venueID
	}
	if *opts.IncludeImages && remote.Image != nil && remote.Image.URL != "" {
		imageURL := remote.Image.URL
		event.BannerImageURL = &imageURL
		result.ImagesDownloaded++
	}
	if organizer, err := s.stores.Organizers().GetDefault(ctx); err == nil {
		event.OrganizerID = &organizer.ID
	}

	if !opts.DryRun {
		if err := s.stores.Events().Create(ctx, event); err != nil {
			return fmt.Errorf("creating event: %w", err)
		}
	}
	result.Imported++
	return nil
}

func (s *importService) reconcileExisting(ctx context.Context, local *model.Event, remote *wordpress.RemoteEvent, opts ImportOptions, result *ImportResult) error {
	conflicts := DetectConflicts(local, remote)

	if len(conflicts) == 0 {
		if !opts.DryRun {
			err := s.stores.Events().UpdateColumns(ctx, local.ID, map[string]any{
				"sync_status":           model.SyncStatusSynced,
				"last_synced_at":        time.Now(),
				"wordpress_modified_at": wordpress.ParseTimePtr(remote.Modified),
			})
			if err != nil {
				return fmt.Errorf("refreshing sync state: %w", err)
			}
		}
		result.Skipped++
		return nil
	}

	if opts.ConflictStrategy == StrategyManual {
		if !opts.DryRun {
			for i := range conflicts {
				conflicts[i].ID = id.New()
				if err := s.stores.ImportConflicts().Create(ctx, &conflicts[i]); err != nil {
					return fmt.Errorf("persisting conflict: %w", err)
				}
			}
			err := s.stores.Events().UpdateColumns(ctx, local.ID, map[string]any{
				"sync_status": model.SyncStatusConflict,
			})
			if err != nil {
				return fmt.Errorf("flagging event conflict: %w", err)
			}
		}
		result.Conflicts++
		return nil
	}

	resolved := ResolveConflicts(*local, remote, conflicts, opts.ConflictStrategy)
	if !opts.DryRun {
		if err := s.stores.Events().Update(ctx, &resolved); err != nil {
			return fmt.Errorf("updating event: %w", err)
		}
	}
	result.Updated++
	return nil
}

// fetchAllEvents walks the paged events endpoint until an empty page signals
// the end, pausing between requests to respect upstream rate limits. The
// client maps the API's past-the-end 400 response to an empty page.
func (s *importService) fetchAllEvents(ctx context.Context, query wordpress.EventQuery) ([]wordpress.RemoteEvent, error) {
	var all []wordpress.RemoteEvent
	for page := 1; ; page++ {
		if page > 1 {
			select {
			case <-time.After(s.wp.PageDelay()):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		events, err := s.wp.FetchEventsPage(ctx, page, query)
		if err != nil {
			return nil, err
		}
		all = append(all, events...)
		if len(events) == 0 {
			return all, nil
		}
	}
}

func (s *importService) fetchAllVenues(ctx context.Context) ([]wordpress.RemoteVenue, error) {
	var all []wordpress.RemoteVenue
	for page := 1; ; page++ {
		if page > 1 {
			select {
			case <-time.After(s.wp.PageDelay()):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		venues, err := s.wp.FetchVenuesPage(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, venues...)
		if len(venues) == 0 {
			return all, nil
		}
	}
}

// ImportVenues fetches every remote venue and reconciles each one
// independently, with the same per-record error isolation as the event
// import.
func (s *importService) ImportVenues(ctx context.Context, dryRun bool) (*VenueImportResult, error) {
	sc := logger.StartSpan(ctx, "import.venues")
	defer sc.End()
	ctx = sc.Context()

	remote, err := s.fetchAllVenues(ctx)
	if err != nil {
		sc.RecordError(err)
		return nil, err
	}
	slog.InfoContext(ctx, "fetched remote venues", "count", len(remote), "dry_run", dryRun)

	result := &VenueImportResult{Errors: []ImportError{}}
	for i := range remote {
		resolution, err := s.reconciler.HandleVenue(ctx, &remote[i], dryRun)
		if err != nil {
			result.Errors = append(result.Errors, ImportError{
				WordPressID: remote[i].ID,
				Message:     err.Error(),
			})
			continue
		}
		if resolution.Created {
			result.Imported++
		} else {
			result.Matched++
		}
	}
	return result, nil
}

// ImportDefaultOrganizer is a three-branch decision: keep an existing
// default, derive one from the first remote event carrying organizer data,
// or synthesize a generic one.
func (s *importService) ImportDefaultOrganizer(ctx context.Context) (*OrganizerImportResult, error) {
	existing, err := s.stores.Organizers().GetDefault(ctx)
	if err == nil {
		return &OrganizerImportResult{
			Action:    OrganizerActionExists,
			Organizer: existing,
			Message:   "default organizer already configured",
		}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("looking up default organizer: %w", err)
	}

	if remote := s.firstRemoteOrganizer(ctx); remote != nil {
		organizer := &model.Organizer{
			ID:        id.New(),
			Name:      remote.Organizer.Text(),
			IsDefault: true,
		}
		if remote.Email != "" {
			email := remote.Email
			organizer.Email = &email
		}
		if remote.Phone != "" {
			phone := remote.Phone
			organizer.Phone = &phone
		}
		if remote.Website != "" {
			website := remote.Website
			organizer.Website = &website
		}
		if err := s.createDefault(ctx, organizer); err != nil {
			return nil, err
		}
		return &OrganizerImportResult{
			Action:    OrganizerActionImported,
			Organizer: organizer,
			Message:   "default organizer imported from WordPress",
		}, nil
	}

	organizer := &model.Organizer{
		ID:        id.New(),
		Name:      "Community Events Team",
		IsDefault: true,
	}
	if err := s.createDefault(ctx, organizer); err != nil {
		return nil, err
	}
	return &OrganizerImportResult{
		Action:    OrganizerActionCreated,
		Organizer: organizer,
		Message:   "no organizer data found upstream, created a generic default",
	}, nil
}

// firstRemoteOrganizer scans the first page of remote events for one carrying
// organizer data. A fetch failure here is not fatal; the caller falls through
// to the synthesized default.
func (s *importService) firstRemoteOrganizer(ctx context.Context) *wordpress.RemoteOrganizer {
	events, err := s.wp.FetchEventsPage(ctx, 1, wordpress.EventQuery{})
	if err != nil {
		slog.WarnContext(ctx, "fetching events for organizer import", "error", err)
		return nil
	}
	for i := range events {
		if organizer := events[i].Organizer.First(); organizer != nil {
			return organizer
		}
	}
	return nil
}

// createDefault inserts a new default organizer, clearing any concurrent
// default in the same transaction.
func (s *importService) createDefault(ctx context.Context, organizer *model.Organizer) error {
	return s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Organizers().ClearDefault(ctx); err != nil {
			return fmt.Errorf("clearing existing default: %w", err)
		}
		if err := stores.Organizers().Create(ctx, organizer); err != nil {
			return fmt.Errorf("creating organizer: %w", err)
		}
		return nil
	})
}

func (s *importService) PendingConflicts(ctx context.Context) ([]model.ConflictWithEvent, error) {
	return s.stores.ImportConflicts().ListPending(ctx)
}

// ResolveConflict applies a reviewer's decision to one pending conflict. The
// event update and the conflict-row transition commit atomically; when the
// last pending conflict for the event resolves, its sync status flips back
// to synced.
func (s *importService) ResolveConflict(ctx context.Context, conflictID int64, req ResolveConflictRequest) (*model.Event, error) {
	var resolved *model.Event
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		conflict, err := stores.ImportConflicts().GetByID(ctx, conflictID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrConflictNotFound
			}
			return fmt.Errorf("loading conflict: %w", err)
		}
		if conflict.Resolution != model.ConflictResolutionPending {
			return ErrConflictResolved
		}

		chosen, err := chosenValue(conflict, req)
		if err != nil {
			return err
		}

		if chosen != nil {
			cols, err := conflictUpdateColumns(conflict.Type, *chosen)
			if err != nil {
				return err
			}
			if err := stores.Events().UpdateColumns(ctx, conflict.EventID, cols); err != nil {
				return fmt.Errorf("applying resolution: %w", err)
			}
		}

		resolvedBy := req.ResolvedBy
		if resolvedBy == "" {
			resolvedBy = "admin"
		}
		if err := stores.ImportConflicts().MarkResolved(ctx, conflictID, resolvedBy); err != nil {
			return fmt.Errorf("marking conflict resolved: %w", err)
		}

		remaining, err := stores.ImportConflicts().CountPendingForEvent(ctx, conflict.EventID)
		if err != nil {
			return fmt.Errorf("counting pending conflicts: %w", err)
		}
		if remaining == 0 {
			now := time.Now()
			cols := map[string]any{"sync_status": model.SyncStatusSynced, "last_synced_at": now}
			if err := stores.Events().UpdateColumns(ctx, conflict.EventID, cols); err != nil {
				return fmt.Errorf("restoring sync status: %w", err)
			}
		}

		resolved, err = stores.Events().GetByID(ctx, conflict.EventID)
		if err != nil {
			return fmt.Errorf("reloading event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "conflict resolved",
		"conflict_id", conflictID,
		"event_id", resolved.ID,
		"resolution", req.Resolution,
	)
	return resolved, nil
}

// chosenValue picks the value a resolution applies to the event, or nil when
// the local value is kept as-is.
func chosenValue(conflict *model.ImportConflict, req ResolveConflictRequest) (*string, error) {
	switch req.Resolution {
	case "local":
		return nil, nil
	case "wordpress":
		v := conflict.WordPressValue
		return &v, nil
	case "custom":
		if req.UseValue == nil {
			return nil, ErrMissingCustomValue
		}
		return req.UseValue, nil
	default:
		return nil, ErrInvalidResolution
	}
}

func conflictUpdateColumns(ct model.ConflictType, value string) (map[string]any, error) {
	switch ct {
	case model.ConflictTypeContent:
		return map[string]any{"theme": value}, nil
	case model.ConflictTypeDateTime:
		t, err := wordpress.ParseTime(value)
		if err != nil {
			return nil, fmt.Errorf("parsing resolution timestamp: %w", err)
		}
		return map[string]any{"date_time": t}, nil
	case model.ConflictTypeStatus:
		return map[string]any{"status": value}, nil
	default:
		return nil, fmt.Errorf("unsupported conflict type %q", ct)
	}
}

func (s *importService) Job(ctx context.Context, jobID string) (*model.ImportJob, error) {
	job, err := s.stores.ImportJobs().GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("loading import job: %w", err)
	}
	return job, nil
}
