package router

import (
	"brewmeet.app/server/internal/http/handler"
	"github.com/gin-gonic/gin"
)

// EventRouter sets up event CRUD and distribution routes.
func EventRouter(rg *gin.RouterGroup, h *handler.EventHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/publish", h.Publish)
}
