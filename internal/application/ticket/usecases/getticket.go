package usecases

import (
	"context"

	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID string
}

type GetTicketUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.Repository, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{ticketRepo: ticketRepo, logger: logger}
}

// Execute returns the ticket with its messages.
func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*ticket.Ticket, error) {
	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Debugw("ticket lookup failed", "ticket_id", query.TicketID, "error", err)
		return nil, translateError(err, "get ticket")
	}
	return t, nil
}
