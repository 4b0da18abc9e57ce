package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"brewmeet.app/server/internal/http/dto"
	"brewmeet.app/server/internal/model"
	"brewmeet.app/server/internal/service"
	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService   service.EventService
	publishService service.PublishService
}

func NewEventHandler(eventService service.EventService, publishService service.PublishService) *EventHandler {
	return &EventHandler{
		eventService:   eventService,
		publishService: publishService,
	}
}

func (h *EventHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	eventID, ok := pathID(c)
	if !ok {
		return
	}

	event, err := h.eventService.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get event", "error", err, "event_id", eventID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get event"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	limit, offset := pagination(c)
	events, err := h.eventService.List(ctx, limit, offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	resp := make([]*dto.EventResponse, len(events))
	for i := range events {
		resp[i] = dto.ToEventResponse(&events[i])
	}
	c.JSON(http.StatusOK, gin.H{"events": resp})
}

func (h *EventHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	event, err := h.eventService.Create(ctx, service.CreateEventInput{
		Theme:          req.Theme,
		Description:    req.Description,
		BannerImageURL: req.BannerImageURL,
		DateTime:       req.DateTime,
		Status:         model.EventStatus(req.Status),
		VenueID:        req.VenueID,
		OrganizerID:    req.OrganizerID,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create event", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	eventID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	input := service.UpdateEventInput{
		Theme:          req.Theme,
		Description:    req.Description,
		BannerImageURL: req.BannerImageURL,
		DateTime:       req.DateTime,
		VenueID:        req.VenueID,
		OrganizerID:    req.OrganizerID,
	}
	if req.Status != nil {
		status := model.EventStatus(*req.Status)
		input.Status = &status
	}

	event, err := h.eventService.Update(ctx, eventID, input)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to update event", "error", err, "event_id", eventID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update event"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	eventID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.eventService.Delete(ctx, eventID); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to delete event", "error", err, "event_id", eventID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete event"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Publish distributes an event across the registered platforms. Platform
// failures are part of the result payload, not an HTTP error.
func (h *EventHandler) Publish(c *gin.Context) {
	ctx := c.Request.Context()

	eventID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.PublishEventRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.publishService.Distribute(ctx, eventID, req.Platforms)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to distribute event", "error", err, "event_id", eventID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to distribute event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int32) {
	limit = 50
	if v, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 32); err == nil {
		limit = int32(v)
	}
	if v, err := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 32); err == nil {
		offset = int32(v)
	}
	return limit, offset
}
