package service_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"brewmeet.app/server/common/id"
	"brewmeet.app/server/internal/model"
	"brewmeet.app/server/internal/service"
	"brewmeet.app/server/internal/store"
	"brewmeet.app/server/internal/wordpress"
)

var _ = Describe("ImportService", func() {
	var (
		svc    service.ImportService
		stores *mockStores
		wp     *mockWordPressClient
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newMockStores()
		wp = &mockWordPressClient{pageDelay: time.Millisecond}
		svc = service.NewImportService(wp, stores, &mockTxRunner{stores: stores}, fallbackVenueID)

		Expect(id.Init(1)).To(Succeed())
	})

	remoteEvent := func(remoteID int64, title string) wordpress.RemoteEvent {
		return wordpress.RemoteEvent{
			ID:        remoteID,
			Title:     wordpress.NewRenderedText(title),
			StartDate: "2026-05-01 18:00:00",
			Modified:  "2026-01-15 10:00:00",
			Status:    "publish",
		}
	}

	singlePage := func(events ...wordpress.RemoteEvent) {
		wp.fetchEventsPageFn = func(_ context.Context, page int, _ wordpress.EventQuery) ([]wordpress.RemoteEvent, error) {
			if page == 1 {
				return events, nil
			}
			return nil, nil
		}
	}

	Describe("ImportEvents", func() {
		Context("when the remote event is new", func() {
			It("creates a local event with provenance fields", func() {
				var created *model.Event
				singlePage(remoteEvent(7001, "Cold Brew Social"))
				stores.events.createFn = func(_ context.Context, e *model.Event) error {
					created = e
					return nil
				}

				jobID, result, err := svc.ImportEvents(ctx, service.ImportOptions{})
				Expect(err).NotTo(HaveOccurred())
				Expect(jobID).NotTo(BeEmpty())
				Expect(result.Imported).To(Equal(1))
				Expect(result.Errors).To(BeEmpty())

				Expect(created).NotTo(BeNil())
				Expect(created.Theme).To(Equal("Cold Brew Social"))
				Expect(created.Status).To(Equal(model.EventStatusPublished))
				Expect(created.SyncStatus).To(Equal(model.SyncStatusSynced))
				Expect(created.WordPressID).To(HaveValue(Equal(int64(7001))))
				Expect(created.ImportedAt).NotTo(BeNil())
				Expect(created.WordPressModifiedAt).NotTo(BeNil())
			})

			It("assigns the fallback venue when no venue data is present", func() {
				var created *model.Event
				singlePage(remoteEvent(7001, "Cold Brew Social"))
				stores.events.createFn = func(_ context.Context, e *model.Event) error {
					created = e
					return nil
				}

				_, _, err := svc.ImportEvents(ctx, service.ImportOptions{})
				Expect(err).NotTo(HaveOccurred())
				Expect(created.VenueID).To(HaveValue(Equal(fallbackVenueID)))
			})

			It("captures the banner image unless images are excluded", func() {
				event := remoteEvent(7001, "Cold Brew Social")
				event.Image = &wordpress.RemoteImage{URL: "https://example.com/banner.jpg"}
				singlePage(event)

				_, result, err := svc.ImportEvents(ctx, service.ImportOptions{})
				Expect(err).NotTo(HaveOccurred())
				Expect(result.ImagesDownloaded).To(Equal(1))

				noImages := false
				_, result, err = svc.ImportEvents(ctx, service.ImportOptions{IncludeImages: &noImages})
				Expect(err).NotTo(HaveOccurred())
				Expect(result.ImagesDownloaded).To(BeZero())
			})
		})

		Context("when the remote event was already imported", func() {
			var local *model.Event

			BeforeEach(func() {
				wordpressID := int64(7001)
				local = &model.Event{
					ID:          42,
					Theme:       "Cold Brew Social",
					DateTime:    time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC),
					Status:      model.EventStatusPublished,
					WordPressID: &wordpressID,
					UpdatedAt:   time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
				}
				stores.events.getByWordPressIDFn = func(_ context.Context, wpID int64) (*model.Event, error) {
					if wpID == 7001 {
						return local, nil
					}
					return nil, store.ErrNotFound
				}
			})

			It("skips an unchanged event instead of duplicating it", func() {
				singlePage(remoteEvent(7001, "Cold Brew Social"))
				stores.events.createFn = func(_ context.Context, _ *model.Event) error {
					Fail("an already-imported event must never be re-created")
					return nil
				}

				_, result, err := svc.ImportEvents(ctx, service.ImportOptions{})
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Skipped).To(Equal(1))
				Expect(result.Imported).To(BeZero())

				_, result, err = svc.ImportEvents(ctx, service.ImportOptions{})
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Skipped).To(Equal(1))
			})

			It("persists pending conflict rows under the manual strategy and leaves the event untouched", func() {
				var persisted []model.ImportConflict
				singlePage(remoteEvent(7001, "Cold Brew Revival"))
				stores.importConflicts.createFn = func(_ context.Context, c *model.ImportConflict) error {
					persisted = append(persisted, *c)
					return nil
				}
				stores.events.updateFn = func(_ context.Context, _ *model.Event) error {
					Fail("manual strategy must not update the event")
					return nil
				}
				var flagged map[string]any
				stores.events.updateColumnsFn = func(_ context.Context, eventID int64, cols map[string]any) error {
					Expect(eventID).To(Equal(int64(42)))
					flagged = cols
					return nil
				}

				_, result, err := svc.ImportEvents(ctx, service.ImportOptions{ConflictStrategy: service.StrategyManual})
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Conflicts).To(Equal(1))
				Expect(result.Updated).To(BeZero())

				Expect(persisted).To(HaveLen(1))
				Expect(persisted[0].Type).To(Equal(model.ConflictTypeContent))
				Expect(persisted[0].Resolution).To(Equal(model.ConflictResolutionPending))
				Expect(flagged).To(HaveKeyWithValue("sync_status", model.SyncStatusConflict))
			})

			It("applies the wordpress strategy and counts the record as updated", func() {
				var updated *model.Event
				singlePage(remoteEvent(7001, "Cold Brew Revival"))
				stores.events.updateFn = func(_ context.Context, e *model.Event) error {
					updated = e
					return nil
				}

				_, result, err := svc.ImportEvents(ctx, service.ImportOptions{ConflictStrategy: service.StrategyWordPress})
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Updated).To(Equal(1))
				Expect(updated.Theme).To(Equal("Cold Brew Revival"))
				Expect(updated.SyncStatus).To(Equal(model.SyncStatusSynced))
			})
		})

		Context("when a record in the middle of the batch fails", func() {
			It("isolates the failure and keeps processing", func() {
				bad := remoteEvent(7002, "Broken Record")
				bad.StartDate = "not a timestamp"
				singlePage(remoteEvent(7001, "First"), bad, remoteEvent(7003, "Third"))

				var createdIDs []int64
				stores.events.createFn = func(_ context.Context, e *model.Event) error {
					createdIDs = append(createdIDs, *e.WordPressID)
					return nil
				}

				_, result, err := svc.ImportEvents(ctx, service.ImportOptions{})
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Imported).To(Equal(2))
				Expect(result.Errors).To(HaveLen(1))
				Expect(result.Errors[0].WordPressID).To(Equal(int64(7002)))
				Expect(createdIDs).To(Equal([]int64{7001, 7003}))
			})
		})

		Context("when paginating", func() {
			It("walks pages until an empty page and imports every record", func() {
				var requests int
				wp.fetchEventsPageFn = func(_ context.Context, page int, _ wordpress.EventQuery) ([]wordpress.RemoteEvent, error) {
					requests++
					counts := map[int]int{1: 50, 2: 25}
					n := counts[page]
					events := make([]wordpress.RemoteEvent, n)
					for i := range events {
						events[i] = remoteEvent(int64(page*1000+i), fmt.Sprintf("Event %d-%d", page, i))
					}
					return events, nil
				}

				_, result, err := svc.ImportEvents(ctx, service.ImportOptions{})
				Expect(err).NotTo(HaveOccurred())
				Expect(requests).To(Equal(3))
				Expect(result.Imported).To(Equal(75))
			})
		})

		Context("when two events share a remote venue", func() {
			It("creates exactly one venue and one mapping", func() {
				venue := &wordpress.RemoteVenue{ID: 900, Name: wordpress.NewRenderedText("Roastery Annex")}
				first := remoteEvent(7001, "First")
				first.Venue = venue
				second := remoteEvent(7002, "Second")
				second.Venue = venue
				singlePage(first, second)

				var venuesCreated, mappingsCreated int
				var mapping *model.VenueMapping
				stores.venues.createFn = func(_ context.Context, v *model.Venue) error {
					venuesCreated++
					return nil
				}
				stores.venueMappings.createFn = func(_ context.Context, m *model.VenueMapping) error {
					mappingsCreated++
					mapping = m
					return nil
				}
				stores.venueMappings.getByWordPressVenueIDFn = func(_ context.Context, remoteID int64) (*model.VenueMapping, error) {
					if mapping != nil && mapping.WordPressVenueID == remoteID {
						return mapping, nil
					}
					return nil, store.ErrNotFound
				}

				_, result, err := svc.ImportEvents(ctx, service.ImportOptions{})
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Imported).To(Equal(2))
				Expect(result.VenuesCreated).To(Equal(1))
				Expect(venuesCreated).To(Equal(1))
				Expect(mappingsCreated).To(Equal(1))
			})
		})

		Context("when running dry", func() {
			It("reports outcomes without writing events", func() {
				singlePage(remoteEvent(7001, "Cold Brew Social"))
				stores.events.createFn = func(_ context.Context, _ *model.Event) error {
					Fail("dry run must not create events")
					return nil
				}

				_, result, err := svc.ImportEvents(ctx, service.ImportOptions{DryRun: true})
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Imported).To(Equal(1))
			})
		})

		Context("when the fetch itself fails", func() {
			It("marks the job failed and surfaces the error", func() {
				wp.fetchEventsPageFn = func(_ context.Context, _ int, _ wordpress.EventQuery) ([]wordpress.RemoteEvent, error) {
					return nil, errors.New("WordPress API error: 401 Unauthorized")
				}

				var failedMsg string
				stores.importJobs.failFn = func(_ context.Context, _ string, errMsg string) error {
					failedMsg = errMsg
					return nil
				}

				jobID, _, err := svc.ImportEvents(ctx, service.ImportOptions{})
				Expect(err).To(HaveOccurred())
				Expect(jobID).NotTo(BeEmpty())
				Expect(failedMsg).To(ContainSubstring("401"))
			})
		})

		It("finalizes the job with the result and full progress", func() {
			singlePage(remoteEvent(7001, "Cold Brew Social"))

			var progresses []int
			var completedResult []byte
			stores.importJobs.updateProgressFn = func(_ context.Context, _ string, progress int) error {
				progresses = append(progresses, progress)
				return nil
			}
			stores.importJobs.completeFn = func(_ context.Context, _ string, result []byte) error {
				completedResult = result
				return nil
			}

			_, _, err := svc.ImportEvents(ctx, service.ImportOptions{})
			Expect(err).NotTo(HaveOccurred())
			Expect(progresses).To(Equal([]int{100}))
			Expect(string(completedResult)).To(ContainSubstring(`"imported":1`))
		})

		It("rejects an unknown strategy", func() {
			_, _, err := svc.ImportEvents(ctx, service.ImportOptions{ConflictStrategy: "newest"})
			Expect(err).To(MatchError(service.ErrInvalidStrategy))
		})
	})

	Describe("ImportVenues", func() {
		It("splits outcomes into imported and matched with error isolation", func() {
			wp.fetchVenuesPageFn = func(_ context.Context, page int) ([]wordpress.RemoteVenue, error) {
				if page > 1 {
					return nil, nil
				}
				return []wordpress.RemoteVenue{
					{ID: 900, Name: wordpress.NewRenderedText("Roastery Annex")},
					{ID: 901, Name: wordpress.NewRenderedText("Known Cafe")},
					{ID: 902, Name: wordpress.NewRenderedText("Broken Venue")},
				}, nil
			}
			stores.venues.findByNameFn = func(_ context.Context, name string) (*model.Venue, error) {
				if name == "Known Cafe" {
					return &model.Venue{ID: 55, Name: "Known Cafe"}, nil
				}
				return nil, store.ErrNotFound
			}
			stores.venues.createFn = func(_ context.Context, v *model.Venue) error {
				if v.Name == "Broken Venue" {
					return errors.New("insert failed")
				}
				return nil
			}

			result, err := svc.ImportVenues(ctx, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Imported).To(Equal(1))
			Expect(result.Matched).To(Equal(1))
			Expect(result.Errors).To(HaveLen(1))
			Expect(result.Errors[0].WordPressID).To(Equal(int64(902)))
		})
	})

	Describe("ImportDefaultOrganizer", func() {
		It("returns the existing default unchanged", func() {
			existing := &model.Organizer{ID: 9, Name: "Sam Barista", IsDefault: true}
			stores.organizers.getDefaultFn = func(_ context.Context) (*model.Organizer, error) {
				return existing, nil
			}
			wp.fetchEventsPageFn = func(_ context.Context, _ int, _ wordpress.EventQuery) ([]wordpress.RemoteEvent, error) {
				Fail("no fetch should happen when a default exists")
				return nil, nil
			}

			result, err := svc.ImportDefaultOrganizer(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Action).To(Equal(service.OrganizerActionExists))
			Expect(result.Organizer).To(Equal(existing))
		})

		It("imports the first remote organizer it finds", func() {
			event := remoteEvent(7001, "Cold Brew Social")
			event.Organizer = wordpress.OrganizerList{{
				Organizer: wordpress.NewRenderedText("Sam Barista"),
				Email:     "sam@example.com",
			}}
			singlePage(event)

			var cleared bool
			var created *model.Organizer
			stores.organizers.clearDefaultFn = func(_ context.Context) error {
				cleared = true
				return nil
			}
			stores.organizers.createFn = func(_ context.Context, o *model.Organizer) error {
				created = o
				return nil
			}

			result, err := svc.ImportDefaultOrganizer(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Action).To(Equal(service.OrganizerActionImported))
			Expect(cleared).To(BeTrue())
			Expect(created).NotTo(BeNil())
			Expect(created.Name).To(Equal("Sam Barista"))
			Expect(created.Email).To(HaveValue(Equal("sam@example.com")))
			Expect(created.IsDefault).To(BeTrue())
		})

		It("synthesizes a generic default when upstream has no organizer data", func() {
			singlePage(remoteEvent(7001, "Cold Brew Social"))

			var created *model.Organizer
			stores.organizers.createFn = func(_ context.Context, o *model.Organizer) error {
				created = o
				return nil
			}

			result, err := svc.ImportDefaultOrganizer(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Action).To(Equal(service.OrganizerActionCreated))
			Expect(created.IsDefault).To(BeTrue())
		})
	})

	Describe("ResolveConflict", func() {
		var conflict *model.ImportConflict

		BeforeEach(func() {
			conflict = &model.ImportConflict{
				ID:             314,
				EventID:        42,
				WordPressID:    7001,
				Type:           model.ConflictTypeContent,
				LocalValue:     "Cold Brew Social",
				WordPressValue: "Cold Brew Revival",
				Resolution:     model.ConflictResolutionPending,
			}
			stores.importConflicts.getByIDFn = func(_ context.Context, conflictID int64) (*model.ImportConflict, error) {
				if conflictID == 314 {
					return conflict, nil
				}
				return nil, store.ErrNotFound
			}
			stores.events.getByIDFn = func(_ context.Context, eventID int64) (*model.Event, error) {
				return &model.Event{ID: eventID, Theme: "Cold Brew Revival"}, nil
			}
		})

		It("applies the wordpress value and restores sync status atomically", func() {
			var updates []map[string]any
			var resolvedBy string
			stores.events.updateColumnsFn = func(_ context.Context, eventID int64, cols map[string]any) error {
				Expect(eventID).To(Equal(int64(42)))
				updates = append(updates, cols)
				return nil
			}
			stores.importConflicts.markResolvedFn = func(_ context.Context, conflictID int64, by string) error {
				Expect(conflictID).To(Equal(int64(314)))
				resolvedBy = by
				return nil
			}

			event, err := svc.ResolveConflict(ctx, 314, service.ResolveConflictRequest{Resolution: "wordpress"})
			Expect(err).NotTo(HaveOccurred())
			Expect(event.Theme).To(Equal("Cold Brew Revival"))
			Expect(resolvedBy).To(Equal("admin"))

			Expect(updates).To(HaveLen(2))
			Expect(updates[0]).To(HaveKeyWithValue("theme", "Cold Brew Revival"))
			Expect(updates[1]).To(HaveKeyWithValue("sync_status", model.SyncStatusSynced))
		})

		It("keeps the event untouched for a local resolution", func() {
			stores.importConflicts.countPendingForEventFn = func(_ context.Context, _ int64) (int64, error) {
				return 2, nil
			}
			stores.events.updateColumnsFn = func(_ context.Context, _ int64, _ map[string]any) error {
				Fail("local resolution with pending siblings must not touch the event")
				return nil
			}

			_, err := svc.ResolveConflict(ctx, 314, service.ResolveConflictRequest{Resolution: "local"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("applies a custom value when provided", func() {
			custom := "Cold Brew Summit"
			var applied map[string]any
			stores.events.updateColumnsFn = func(_ context.Context, _ int64, cols map[string]any) error {
				if _, ok := cols["theme"]; ok {
					applied = cols
				}
				return nil
			}

			_, err := svc.ResolveConflict(ctx, 314, service.ResolveConflictRequest{
				Resolution: "custom",
				UseValue:   &custom,
				ResolvedBy: "reviewer@brewmeet.app",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(applied).To(HaveKeyWithValue("theme", "Cold Brew Summit"))
		})

		It("rejects a custom resolution without a value", func() {
			_, err := svc.ResolveConflict(ctx, 314, service.ResolveConflictRequest{Resolution: "custom"})
			Expect(err).To(MatchError(service.ErrMissingCustomValue))
		})

		It("rejects an already resolved conflict", func() {
			conflict.Resolution = model.ConflictResolutionResolved

			_, err := svc.ResolveConflict(ctx, 314, service.ResolveConflictRequest{Resolution: "local"})
			Expect(err).To(MatchError(service.ErrConflictResolved))
		})

		It("returns a distinct error for a missing conflict", func() {
			_, err := svc.ResolveConflict(ctx, 999, service.ResolveConflictRequest{Resolution: "local"})
			Expect(err).To(MatchError(service.ErrConflictNotFound))
		})
	})

	Describe("Job", func() {
		It("maps a missing job to ErrJobNotFound", func() {
			_, err := svc.Job(ctx, "no-such-job")
			Expect(err).To(MatchError(service.ErrJobNotFound))
		})
	})
})
