package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"brewmeet.app/server/internal/http/dto"
	"brewmeet.app/server/internal/service"
	"github.com/gin-gonic/gin"
)

type VenueHandler struct {
	venueService service.VenueService
}

func NewVenueHandler(venueService service.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

func (h *VenueHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	venueID, ok := pathID(c)
	if !ok {
		return
	}

	venue, err := h.venueService.Get(ctx, venueID)
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "venue not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get venue", "error", err, "venue_id", venueID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get venue"})
		return
	}

	c.JSON(http.StatusOK, dto.ToVenueResponse(venue))
}

func (h *VenueHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	limit, offset := pagination(c)
	venues, err := h.venueService.List(ctx, limit, offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list venues", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list venues"})
		return
	}

	resp := make([]*dto.VenueResponse, len(venues))
	for i := range venues {
		resp[i] = dto.ToVenueResponse(&venues[i])
	}
	c.JSON(http.StatusOK, gin.H{"venues": resp})
}

func (h *VenueHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	venue, err := h.venueService.Create(ctx, service.CreateVenueInput{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Zip:     req.Zip,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create venue", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create venue"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToVenueResponse(venue))
}

func (h *VenueHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	venueID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	venue, err := h.venueService.Update(ctx, venueID, service.CreateVenueInput{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Zip:     req.Zip,
	})
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "venue not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to update venue", "error", err, "venue_id", venueID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update venue"})
		return
	}

	c.JSON(http.StatusOK, dto.ToVenueResponse(venue))
}

// Delete deactivates a venue. Venues referenced by events are never removed,
// only hidden from future matching.
func (h *VenueHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	venueID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.venueService.Deactivate(ctx, venueID); err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "venue not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to deactivate venue", "error", err, "venue_id", venueID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deactivate venue"})
		return
	}

	c.Status(http.StatusNoContent)
}
