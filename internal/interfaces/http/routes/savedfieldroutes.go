package routes

import (
	"github.com/gin-gonic/gin"

	savedfieldhandlers "github.com/hotline-inc/hotline/internal/interfaces/http/handlers/savedfield"
	"github.com/hotline-inc/hotline/internal/interfaces/http/middleware"
)

type SavedFieldRouteConfig struct {
	SavedFieldHandler *savedfieldhandlers.Handler
	ActorMiddleware   *middleware.ActorMiddleware
}

func SetupSavedFieldRoutes(engine *gin.Engine, config *SavedFieldRouteConfig) {
	fields := engine.Group("/api/saved-fields")
	fields.Use(config.ActorMiddleware.RequireActor())
	{
		fields.GET("", config.SavedFieldHandler.List)
		fields.POST("", config.SavedFieldHandler.Remember)
		fields.DELETE("/:type/:value", config.SavedFieldHandler.Forget)
	}
}
