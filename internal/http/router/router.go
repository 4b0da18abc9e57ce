package router

import (
	"brewmeet.app/server/internal/http/handler"
	"brewmeet.app/server/internal/service"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	importHandler := handler.NewImportHandler(services.Import())
	ImportRouter(router.Group("/import/wordpress"), importHandler)

	v1 := router.Group("/api/v1")
	{
		eventHandler := handler.NewEventHandler(services.Events(), services.Publish())
		EventRouter(v1.Group("/events"), eventHandler)

		venueHandler := handler.NewVenueHandler(services.Venues())
		VenueRouter(v1.Group("/venues"), venueHandler)

		organizerHandler := handler.NewOrganizerHandler(services.Organizers())
		OrganizerRouter(v1.Group("/organizers"), organizerHandler)
	}
}
