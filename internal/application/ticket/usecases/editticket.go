package usecases

import (
	"context"

	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// EditTicketCommand replaces every editable field. An empty Status keeps the
// current status.
type EditTicketCommand struct {
	TicketID   string
	Caller     string
	Reason     string
	Tags       []string
	Status     string
	IsGLPI     bool
	IsBlocking bool
	Actor      string
}

type EditTicketUseCase struct {
	ticketRepo ticket.Repository
	publisher  events.EventPublisher
	normalizer *biztime.Normalizer
	logger     logger.Interface
}

func NewEditTicketUseCase(
	ticketRepo ticket.Repository,
	publisher events.EventPublisher,
	normalizer *biztime.Normalizer,
	logger logger.Interface,
) *EditTicketUseCase {
	return &EditTicketUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		normalizer: normalizer,
		logger:     logger,
	}
}

func (uc *EditTicketUseCase) Execute(ctx context.Context, cmd EditTicketCommand) (*ticket.Ticket, error) {
	uc.logger.Infow("executing edit ticket use case", "ticket_id", cmd.TicketID, "actor", cmd.Actor)

	d, err := detailsFrom(cmd.Caller, cmd.Reason, cmd.Tags, cmd.Status, cmd.IsGLPI, cmd.IsBlocking)
	if err != nil {
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, translateError(err, "get ticket")
	}

	if err := t.Edit(d, cmd.Actor, uc.normalizer.Now()); err != nil {
		return nil, translateError(err, "edit ticket")
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
		return nil, translateError(err, "update ticket")
	}

	publishEvents(ctx, uc.publisher, uc.logger, t.GetEvents())
	t.ClearEvents()

	uc.logger.Infow("ticket edited successfully", "ticket_id", t.ID())
	return t, nil
}
