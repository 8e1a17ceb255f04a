package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotline-inc/hotline/internal/application/ticket/dto"
	"github.com/hotline-inc/hotline/internal/application/ticket/usecases"
	"github.com/hotline-inc/hotline/internal/interfaces/http/middleware"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	"github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/id"
	"github.com/hotline-inc/hotline/internal/shared/logger"
	"github.com/hotline-inc/hotline/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC  usecases.CreateTicketExecutor
	editTicketUC    usecases.EditTicketExecutor
	archiveTicketUC usecases.ArchiveTicketExecutor
	getTicketUC     usecases.GetTicketExecutor
	deleteTicketUC  usecases.DeleteTicketExecutor
	listTicketsUC   usecases.ListTicketsExecutor
	presenter       *dto.Presenter
	logger          logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	editTicketUC usecases.EditTicketExecutor,
	archiveTicketUC usecases.ArchiveTicketExecutor,
	getTicketUC usecases.GetTicketExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	presenter *dto.Presenter,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:  createTicketUC,
		editTicketUC:    editTicketUC,
		archiveTicketUC: archiveTicketUC,
		getTicketUC:     getTicketUC,
		deleteTicketUC:  deleteTicketUC,
		listTicketsUC:   listTicketsUC,
		presenter:       presenter,
		logger:          logger,
	}
}

// CreateTicket handles POST /api/tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(middleware.Actor(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, h.presenter.Ticket(result, displayStyle(c)), "Ticket created successfully")
}

// GetTicket handles GET /api/tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", h.presenter.Ticket(result, displayStyle(c)))
}

// EditTicket handles PUT /api/tickets/:id
func (h *TicketHandler) EditTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req EditTicketRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for edit ticket", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.editTicketUC.Execute(c.Request.Context(), req.ToCommand(ticketID, middleware.Actor(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", h.presenter.Ticket(result, displayStyle(c)))
}

// ArchiveTicket handles POST /api/tickets/:id/archive
func (h *TicketHandler) ArchiveTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ArchiveTicketCommand{TicketID: ticketID, Actor: middleware.Actor(c)}
	result, err := h.archiveTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket archived successfully", h.presenter.Ticket(result, displayStyle(c)))
}

// DeleteTicket handles DELETE /api/tickets/:id. Unknown ids also answer 204.
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID := c.Param("id")
	if err := utils.ValidateID(ticketID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.DeleteTicketCommand{TicketID: ticketID, Actor: middleware.Actor(c)}
	if _, err := h.deleteTicketUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ListActiveTickets handles GET /api/tickets
func (h *TicketHandler) ListActiveTickets(c *gin.Context) {
	h.list(c, usecases.ListTicketsQuery{WithMessages: true})
}

// ListArchivedTickets handles GET /api/tickets/archived
func (h *TicketHandler) ListArchivedTickets(c *gin.Context) {
	var req ListArchivedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid query parameters", err.Error()))
		return
	}
	h.list(c, req.ToQuery())
}

func (h *TicketHandler) list(c *gin.Context, query usecases.ListTicketsQuery) {
	result, err := h.listTicketsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", h.presenter.Tickets(result, displayStyle(c)))
}

// parseTicketID reads the :id path parameter. Malformed ids cannot name a
// ticket and are reported as not found.
func parseTicketID(c *gin.Context) (string, error) {
	ticketID := c.Param("id")
	if err := utils.ValidateID(ticketID); err != nil {
		return "", err
	}
	if err := id.ValidateTicketID(ticketID); err != nil {
		return "", errors.NewNotFoundError("ticket not found")
	}
	return ticketID, nil
}

func displayStyle(c *gin.Context) biztime.Style {
	return biztime.PreferredStyle(c.GetHeader("Accept-Language"))
}
