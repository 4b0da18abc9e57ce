package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"brewmeet.app/server/internal/http/dto"
	"brewmeet.app/server/internal/service"
	"github.com/gin-gonic/gin"
)

type OrganizerHandler struct {
	organizerService service.OrganizerService
}

func NewOrganizerHandler(organizerService service.OrganizerService) *OrganizerHandler {
	return &OrganizerHandler{organizerService: organizerService}
}

func (h *OrganizerHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	organizerID, ok := pathID(c)
	if !ok {
		return
	}

	organizer, err := h.organizerService.Get(ctx, organizerID)
	if err != nil {
		if errors.Is(err, service.ErrOrganizerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organizer not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get organizer", "error", err, "organizer_id", organizerID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get organizer"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizerResponse(organizer))
}

func (h *OrganizerHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	organizers, err := h.organizerService.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list organizers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list organizers"})
		return
	}

	resp := make([]*dto.OrganizerResponse, len(organizers))
	for i := range organizers {
		resp[i] = dto.ToOrganizerResponse(&organizers[i])
	}
	c.JSON(http.StatusOK, gin.H{"organizers": resp})
}

func (h *OrganizerHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.OrganizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	organizer, err := h.organizerService.Create(ctx, service.CreateOrganizerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Website: req.Website,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create organizer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create organizer"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizerResponse(organizer))
}

func (h *OrganizerHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	organizerID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.OrganizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	organizer, err := h.organizerService.Update(ctx, organizerID, service.CreateOrganizerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Website: req.Website,
	})
	if err != nil {
		if errors.Is(err, service.ErrOrganizerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organizer not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to update organizer", "error", err, "organizer_id", organizerID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update organizer"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizerResponse(organizer))
}

// SetDefault makes the organizer the default for new events.
func (h *OrganizerHandler) SetDefault(c *gin.Context) {
	ctx := c.Request.Context()

	organizerID, ok := pathID(c)
	if !ok {
		return
	}

	organizer, err := h.organizerService.SetDefault(ctx, organizerID)
	if err != nil {
		if errors.Is(err, service.ErrOrganizerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organizer not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to set default organizer", "error", err, "organizer_id", organizerID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set default organizer"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizerResponse(organizer))
}

func (h *OrganizerHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	organizerID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.organizerService.Delete(ctx, organizerID); err != nil {
		if errors.Is(err, service.ErrOrganizerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organizer not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to delete organizer", "error", err, "organizer_id", organizerID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete organizer"})
		return
	}

	c.Status(http.StatusNoContent)
}
