package router

import (
	"brewmeet.app/server/internal/http/handler"
	"github.com/gin-gonic/gin"
)

// ImportRouter sets up the WordPress import routes.
func ImportRouter(rg *gin.RouterGroup, h *handler.ImportHandler) {
	rg.POST("/events", h.ImportEvents)
	rg.POST("/venues", h.ImportVenues)
	rg.POST("/organizer", h.ImportOrganizer)
	rg.GET("/conflicts", h.ListConflicts)
	rg.POST("/conflicts/:id/resolve", h.ResolveConflict)
	rg.GET("/status/:jobId", h.JobStatus)
}
