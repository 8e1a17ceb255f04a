package usecases

import (
	"context"

	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

type ArchiveTicketCommand struct {
	TicketID string
	Actor    string
}

type ArchiveTicketUseCase struct {
	ticketRepo ticket.Repository
	publisher  events.EventPublisher
	normalizer *biztime.Normalizer
	logger     logger.Interface
}

func NewArchiveTicketUseCase(
	ticketRepo ticket.Repository,
	publisher events.EventPublisher,
	normalizer *biztime.Normalizer,
	logger logger.Interface,
) *ArchiveTicketUseCase {
	return &ArchiveTicketUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Execute archives the ticket by hand. Archiving an archived ticket restamps
// archivedAt and archivedBy.
func (uc *ArchiveTicketUseCase) Execute(ctx context.Context, cmd ArchiveTicketCommand) (*ticket.Ticket, error) {
	uc.logger.Infow("executing archive ticket use case", "ticket_id", cmd.TicketID, "actor", cmd.Actor)

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, translateError(err, "get ticket")
	}

	t.Archive(cmd.Actor, uc.normalizer.Now())

	if err := uc.ticketRepo.MarkArchived(ctx, t); err != nil {
		uc.logger.Errorw("failed to archive ticket", "ticket_id", t.ID(), "error", err)
		return nil, translateError(err, "archive ticket")
	}

	publishEvents(ctx, uc.publisher, uc.logger, t.GetEvents())
	t.ClearEvents()

	uc.logger.Infow("ticket archived successfully", "ticket_id", t.ID())
	return t, nil
}
