package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/hotline-inc/hotline/internal/interfaces/http/handlers/ticket"
	"github.com/hotline-inc/hotline/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler   *tickethandlers.TicketHandler
	MessageHandler  *tickethandlers.MessageHandler
	ActorMiddleware *middleware.ActorMiddleware
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/api/tickets")
	tickets.Use(config.ActorMiddleware.RequireActor())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		tickets.POST("", config.TicketHandler.CreateTicket)
		tickets.GET("", config.TicketHandler.ListActiveTickets)
		tickets.GET("/archived", config.TicketHandler.ListArchivedTickets)

		// Specific action endpoints
		tickets.POST("/:id/archive", config.TicketHandler.ArchiveTicket)
		tickets.GET("/:id/messages", config.MessageHandler.ListMessages)
		tickets.POST("/:id/messages", config.MessageHandler.AppendMessage)
		tickets.POST("/:id/messages/image", config.MessageHandler.UploadImage)
		tickets.PUT("/:id/messages/order", config.MessageHandler.ReorderMessages)

		// Generic parameterized routes (must come LAST)
		tickets.GET("/:id", config.TicketHandler.GetTicket)
		tickets.PUT("/:id", config.TicketHandler.EditTicket)
		tickets.DELETE("/:id", config.TicketHandler.DeleteTicket)
	}
}

type ReportRouteConfig struct {
	ReportHandler   *tickethandlers.ReportHandler
	ImageHandler    *tickethandlers.ImageHandler
	ActorMiddleware *middleware.ActorMiddleware
}

// SetupReportRoutes registers the daily report and image download routes.
// Images are fetched by <img> tags, which cannot carry the actor header, so
// that route stays outside the actor group.
func SetupReportRoutes(engine *gin.Engine, config *ReportRouteConfig) {
	reports := engine.Group("/api/reports")
	reports.Use(config.ActorMiddleware.RequireActor())
	{
		reports.GET("/daily", config.ReportHandler.DailyReport)
	}

	engine.GET("/api/images/*key", config.ImageHandler.ServeImage)
}
