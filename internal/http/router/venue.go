package router

import (
	"brewmeet.app/server/internal/http/handler"
	"github.com/gin-gonic/gin"
)

// VenueRouter sets up venue CRUD routes. Delete is a soft deactivation.
func VenueRouter(rg *gin.RouterGroup, h *handler.VenueHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
