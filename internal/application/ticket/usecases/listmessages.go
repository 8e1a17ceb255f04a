package usecases

import (
	"context"

	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

type ListMessagesQuery struct {
	TicketID string
}

type ListMessagesUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewListMessagesUseCase(ticketRepo ticket.Repository, logger logger.Interface) *ListMessagesUseCase {
	return &ListMessagesUseCase{ticketRepo: ticketRepo, logger: logger}
}

// Execute returns the ticket's messages oldest first.
func (uc *ListMessagesUseCase) Execute(ctx context.Context, query ListMessagesQuery) ([]*ticket.Message, error) {
	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		return nil, translateError(err, "get ticket")
	}
	return t.Messages(), nil
}
