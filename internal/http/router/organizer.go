package router

import (
	"brewmeet.app/server/internal/http/handler"
	"github.com/gin-gonic/gin"
)

// OrganizerRouter sets up organizer CRUD routes.
func OrganizerRouter(rg *gin.RouterGroup, h *handler.OrganizerHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/default", h.SetDefault)
}
