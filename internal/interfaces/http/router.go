package http

import (
	"github.com/hotline-inc/hotline/internal/interfaces/http/middleware"
	"github.com/hotline-inc/hotline/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins, c.actorMiddleware.Header()))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.hdlrs.healthHandler.Health)

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler: c.hdlrs.authHandler,
		RateLimiter: c.rateLimiter,
	})

	routes.SetupTicketRoutes(c.engine, &routes.TicketRouteConfig{
		TicketHandler:   c.hdlrs.ticketHandler,
		MessageHandler:  c.hdlrs.messageHandler,
		ActorMiddleware: c.actorMiddleware,
	})

	routes.SetupSavedFieldRoutes(c.engine, &routes.SavedFieldRouteConfig{
		SavedFieldHandler: c.hdlrs.savedFieldHandler,
		ActorMiddleware:   c.actorMiddleware,
	})

	routes.SetupReportRoutes(c.engine, &routes.ReportRouteConfig{
		ReportHandler:   c.hdlrs.reportHandler,
		ImageHandler:    c.hdlrs.imageHandler,
		ActorMiddleware: c.actorMiddleware,
	})
}
