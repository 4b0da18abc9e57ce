package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"brewmeet.app/server/internal/http/handler"
	"brewmeet.app/server/internal/model"
	"brewmeet.app/server/internal/service"
)

var _ = Describe("ImportHandler", func() {
	var (
		router *gin.Engine
		svc    *mockImportService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockImportService{}
		h := handler.NewImportHandler(svc)

		group := router.Group("/import/wordpress")
		{
			group.POST("/events", h.ImportEvents)
			group.POST("/venues", h.ImportVenues)
			group.POST("/organizer", h.ImportOrganizer)
			group.GET("/conflicts", h.ListConflicts)
			group.POST("/conflicts/:id/resolve", h.ResolveConflict)
			group.GET("/status/:jobId", h.JobStatus)
		}
	})

	Describe("ImportEvents", func() {
		It("returns 200 with the job id and result", func() {
			svc.importEventsFn = func(_ context.Context, opts service.ImportOptions) (string, *service.ImportResult, error) {
				Expect(opts.DryRun).To(BeTrue())
				Expect(opts.ConflictStrategy).To(Equal(service.StrategyLatest))
				return "job-123", &service.ImportResult{Imported: 3, Skipped: 1}, nil
			}

			body, _ := json.Marshal(map[string]any{
				"dryRun":           true,
				"conflictStrategy": "latest",
			})
			req := httptest.NewRequest(http.MethodPost, "/import/wordpress/events", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["success"]).To(BeTrue())
			Expect(resp["jobId"]).To(Equal("job-123"))
			result := resp["result"].(map[string]any)
			Expect(result["imported"]).To(BeNumerically("==", 3))
			Expect(result["skipped"]).To(BeNumerically("==", 1))
		})

		It("accepts an empty body and uses defaults", func() {
			var called bool
			svc.importEventsFn = func(_ context.Context, opts service.ImportOptions) (string, *service.ImportResult, error) {
				called = true
				Expect(opts.DryRun).To(BeFalse())
				return "job-123", &service.ImportResult{}, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/import/wordpress/events", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(called).To(BeTrue())
		})

		It("returns 400 for an unknown conflict strategy", func() {
			body, _ := json.Marshal(map[string]string{"conflictStrategy": "newest"})
			req := httptest.NewRequest(http.MethodPost, "/import/wordpress/events", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 500 when the import aborts", func() {
			svc.importEventsFn = func(_ context.Context, _ service.ImportOptions) (string, *service.ImportResult, error) {
				return "job-123", nil, context.DeadlineExceeded
			}

			req := httptest.NewRequest(http.MethodPost, "/import/wordpress/events", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["success"]).To(BeFalse())
		})
	})

	Describe("ImportVenues", func() {
		It("passes the dry run flag through", func() {
			var gotDryRun bool
			svc.importVenuesFn = func(_ context.Context, dryRun bool) (*service.VenueImportResult, error) {
				gotDryRun = dryRun
				return &service.VenueImportResult{Imported: 2, Matched: 5}, nil
			}

			body, _ := json.Marshal(map[string]bool{"dryRun": true})
			req := httptest.NewRequest(http.MethodPost, "/import/wordpress/venues", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotDryRun).To(BeTrue())
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			result := resp["result"].(map[string]any)
			Expect(result["matched"]).To(BeNumerically("==", 5))
		})
	})

	Describe("ImportOrganizer", func() {
		It("reports which branch was taken", func() {
			svc.importOrganizerFn = func(_ context.Context) (*service.OrganizerImportResult, error) {
				return &service.OrganizerImportResult{
					Action:    service.OrganizerActionExists,
					Organizer: &model.Organizer{ID: 9, Name: "Sam Barista"},
				}, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/import/wordpress/organizer", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			result := resp["result"].(map[string]any)
			Expect(result["action"]).To(Equal("exists"))
		})
	})

	Describe("ListConflicts", func() {
		It("returns pending conflicts with event summaries", func() {
			svc.pendingConflictsFn = func(_ context.Context) ([]model.ConflictWithEvent, error) {
				return []model.ConflictWithEvent{{
					Conflict: model.ImportConflict{
						ID:             314,
						EventID:        42,
						Type:           model.ConflictTypeContent,
						LocalValue:     "Cold Brew Social",
						WordPressValue: "Cold Brew Revival",
					},
					EventTheme:  "Cold Brew Social",
					EventStatus: model.EventStatusPublished,
				}}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/import/wordpress/conflicts", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			conflicts := resp["conflicts"].([]any)
			Expect(conflicts).To(HaveLen(1))
			first := conflicts[0].(map[string]any)
			Expect(first["conflict_type"]).To(Equal("content"))
			Expect(first["event_theme"]).To(Equal("Cold Brew Social"))
		})
	})

	Describe("ResolveConflict", func() {
		postResolve := func(id string, payload map[string]any) *httptest.ResponseRecorder {
			body, _ := json.Marshal(payload)
			req := httptest.NewRequest(http.MethodPost, "/import/wordpress/conflicts/"+id+"/resolve", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		It("returns the updated event on success", func() {
			svc.resolveConflictFn = func(_ context.Context, conflictID int64, req service.ResolveConflictRequest) (*model.Event, error) {
				Expect(conflictID).To(Equal(int64(314)))
				Expect(req.Resolution).To(Equal("wordpress"))
				return &model.Event{ID: 42, Theme: "Cold Brew Revival"}, nil
			}

			w := postResolve("314", map[string]any{"resolution": "wordpress"})

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			event := resp["event"].(map[string]any)
			Expect(event["theme"]).To(Equal("Cold Brew Revival"))
		})

		It("returns 400 for a resolution outside the allowed set", func() {
			w := postResolve("314", map[string]any{"resolution": "remote"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 for a non-numeric conflict id", func() {
			w := postResolve("abc", map[string]any{"resolution": "local"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for a missing conflict", func() {
			svc.resolveConflictFn = func(_ context.Context, _ int64, _ service.ResolveConflictRequest) (*model.Event, error) {
				return nil, service.ErrConflictNotFound
			}

			w := postResolve("999", map[string]any{"resolution": "local"})
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 409 for an already resolved conflict", func() {
			svc.resolveConflictFn = func(_ context.Context, _ int64, _ service.ResolveConflictRequest) (*model.Event, error) {
				return nil, service.ErrConflictResolved
			}

			w := postResolve("314", map[string]any{"resolution": "local"})
			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("returns 400 when a custom resolution omits its value", func() {
			svc.resolveConflictFn = func(_ context.Context, _ int64, _ service.ResolveConflictRequest) (*model.Event, error) {
				return nil, service.ErrMissingCustomValue
			}

			w := postResolve("314", map[string]any{"resolution": "custom"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("JobStatus", func() {
		It("returns the job record", func() {
			svc.jobFn = func(_ context.Context, jobID string) (*model.ImportJob, error) {
				Expect(jobID).To(Equal("job-123"))
				return &model.ImportJob{
					JobID:    "job-123",
					Status:   model.ImportJobStatusCompleted,
					Progress: 100,
				}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/import/wordpress/status/job-123", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			job := resp["job"].(map[string]any)
			Expect(job["status"]).To(Equal("completed"))
			Expect(job["progress"]).To(BeNumerically("==", 100))
		})

		It("returns 404 for an unknown job", func() {
			svc.jobFn = func(_ context.Context, _ string) (*model.ImportJob, error) {
				return nil, service.ErrJobNotFound
			}

			req := httptest.NewRequest(http.MethodGet, "/import/wordpress/status/nope", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
