package usecases

import (
	"context"

	"github.com/hotline-inc/hotline/internal/domain/ticket"
	apperrors "github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/id"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

type ReorderMessagesCommand struct {
	TicketID   string
	MessageIDs []string
	Actor      string
}

type ReorderMessagesUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewReorderMessagesUseCase(ticketRepo ticket.Repository, logger logger.Interface) *ReorderMessagesUseCase {
	return &ReorderMessagesUseCase{ticketRepo: ticketRepo, logger: logger}
}

// Execute accepts a client-side ordering. Messages are always returned by
// creation time, so the order is not stored.
func (uc *ReorderMessagesUseCase) Execute(ctx context.Context, cmd ReorderMessagesCommand) error {
	if _, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID); err != nil {
		return translateError(err, "get ticket")
	}
	for _, messageID := range cmd.MessageIDs {
		if err := id.ValidateMessageID(messageID); err != nil {
			return apperrors.NewValidationError("invalid message id", messageID)
		}
	}
	uc.logger.Debugw("message reorder ignored", "ticket_id", cmd.TicketID, "count", len(cmd.MessageIDs), "actor", cmd.Actor)
	return nil
}
