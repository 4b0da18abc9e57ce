package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"brewmeet.app/server/internal/http/dto"
	"brewmeet.app/server/internal/service"
	"github.com/gin-gonic/gin"
)

// ImportHandler exposes the WordPress import pipeline. Imports run
// synchronously; the response carries the finished result, and the job id
// lets callers fetch it again later.
type ImportHandler struct {
	importService service.ImportService
}

func NewImportHandler(importService service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportEvents runs a full event import. Partial failure is still a success:
// per-record errors are reported inside the result, not as an HTTP error.
func (h *ImportHandler) ImportEvents(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ImportEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid request",
			"message": err.Error(),
		})
		return
	}

	jobID, result, err := h.importService.ImportEvents(ctx, req.ToOptions())
	if err != nil {
		if errors.Is(err, service.ErrInvalidStrategy) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "invalid conflict strategy",
				"message": err.Error(),
			})
			return
		}
		slog.ErrorContext(ctx, "event import failed", "error", err, "job_id", jobID)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "import failed",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"jobId":   jobID,
		"result":  result,
	})
}

// ImportVenues imports all remote venues with per-record error isolation.
func (h *ImportHandler) ImportVenues(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ImportVenuesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid request",
			"message": err.Error(),
		})
		return
	}

	result, err := h.importService.ImportVenues(ctx, req.DryRun)
	if err != nil {
		slog.ErrorContext(ctx, "venue import failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "venue import failed",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

// ImportOrganizer ensures a default organizer exists, importing or
// synthesizing one when needed.
func (h *ImportHandler) ImportOrganizer(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.importService.ImportDefaultOrganizer(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "organizer import failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "organizer import failed",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

// ListConflicts returns pending conflicts joined with their event summaries.
func (h *ImportHandler) ListConflicts(c *gin.Context) {
	ctx := c.Request.Context()

	conflicts, err := h.importService.PendingConflicts(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "listing conflicts failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to list conflicts",
			"message": err.Error(),
		})
		return
	}

	resp := make([]dto.ConflictResponse, len(conflicts))
	for i, conflict := range conflicts {
		resp[i] = dto.ToConflictResponse(conflict)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "conflicts": resp})
}

// ResolveConflict applies a reviewer's decision to one pending conflict.
func (h *ImportHandler) ResolveConflict(c *gin.Context) {
	ctx := c.Request.Context()

	conflictID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid conflict id",
			"message": "conflict id must be an integer",
		})
		return
	}

	var req dto.ResolveConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid request",
			"message": err.Error(),
		})
		return
	}

	event, err := h.importService.ResolveConflict(ctx, conflictID, service.ResolveConflictRequest{
		Resolution: req.Resolution,
		UseValue:   req.UseValue,
		ResolvedBy: req.ResolvedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConflictNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "conflict not found",
				"message": err.Error(),
			})
		case errors.Is(err, service.ErrConflictResolved):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "conflict already resolved",
				"message": err.Error(),
			})
		case errors.Is(err, service.ErrMissingCustomValue), errors.Is(err, service.ErrInvalidResolution):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "invalid resolution",
				"message": err.Error(),
			})
		default:
			slog.ErrorContext(ctx, "conflict resolution failed", "error", err, "conflict_id", conflictID)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "failed to resolve conflict",
				"message": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "event": dto.ToEventResponse(event)})
}

// JobStatus returns one import job record by its public id.
func (h *ImportHandler) JobStatus(c *gin.Context) {
	ctx := c.Request.Context()

	job, err := h.importService.Job(ctx, c.Param("jobId"))
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "job not found",
				"message": err.Error(),
			})
			return
		}
		slog.ErrorContext(ctx, "loading import job failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to load job",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "job": dto.ToImportJobResponse(job)})
}
