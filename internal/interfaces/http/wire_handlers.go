package http

import (
	"time"

	"github.com/hotline-inc/hotline/internal/interfaces/http/handlers"
	savedFieldHandlers "github.com/hotline-inc/hotline/internal/interfaces/http/handlers/savedfield"
	ticketHandlers "github.com/hotline-inc/hotline/internal/interfaces/http/handlers/ticket"
	"github.com/hotline-inc/hotline/internal/interfaces/http/middleware"
)

const (
	loginRateLimit  = 20
	loginRateWindow = time.Minute
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler *handlers.HealthHandler
	authHandler   *handlers.AuthHandler

	// Ticket
	ticketHandler  *ticketHandlers.TicketHandler
	messageHandler *ticketHandlers.MessageHandler
	imageHandler   *ticketHandlers.ImageHandler
	reportHandler  *ticketHandlers.ReportHandler

	// Saved fields
	savedFieldHandler *savedFieldHandlers.Handler
}

// initHandlers builds the middlewares and every HTTP handler.
func (c *Container) initHandlers() {
	log := c.log
	ucs := c.ucs

	c.actorMiddleware = middleware.NewActorMiddleware(c.cfg.Server.ActorHeader, log)
	c.rateLimiter = middleware.NewRateLimiter(c.redis, "login", loginRateLimit, loginRateWindow, log)

	var pinger handlers.Pinger
	if sqlDB, err := c.db.DB(); err == nil {
		pinger = sqlDB
	} else {
		log.Warnw("health check will not ping the database", "error", err)
	}

	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(pinger, log),
		authHandler:   handlers.NewAuthHandler(ucs.loginUC, c.normalizer, log),

		ticketHandler: ticketHandlers.NewTicketHandler(
			ucs.createTicketUC,
			ucs.editTicketUC,
			ucs.archiveTicketUC,
			ucs.getTicketUC,
			ucs.deleteTicketUC,
			ucs.listTicketsUC,
			c.presenter,
			log,
		),
		messageHandler: ticketHandlers.NewMessageHandler(
			ucs.appendMessageUC,
			ucs.listMessagesUC,
			ucs.reorderMessagesUC,
			ucs.uploadImageUC,
			ucs.uploadImageUC.MaxBytes(),
			c.presenter,
			log,
		),
		imageHandler:  ticketHandlers.NewImageHandler(c.images, log),
		reportHandler: ticketHandlers.NewReportHandler(ucs.dailyReportUC, log),

		savedFieldHandler: savedFieldHandlers.NewHandler(ucs.rememberUC, ucs.forgetUC, ucs.listSavedFieldsUC, log),
	}
}
