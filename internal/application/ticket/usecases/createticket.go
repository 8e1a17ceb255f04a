package usecases

import (
	"context"

	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	vo "github.com/hotline-inc/hotline/internal/domain/ticket/valueobjects"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	apperrors "github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/id"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// CreateTicketCommand opens a ticket. New tickets always start open.
type CreateTicketCommand struct {
	Caller     string
	Reason     string
	Tags       []string
	IsGLPI     bool
	IsBlocking bool
	Actor      string
}

// detailsFrom converts command input. An empty status keeps the default.
func detailsFrom(caller, reason string, tags []string, status string, isGLPI, isBlocking bool) (ticket.Details, error) {
	d := ticket.Details{
		Caller:     caller,
		Reason:     reason,
		Tags:       tags,
		IsGLPI:     isGLPI,
		IsBlocking: isBlocking,
	}
	if status != "" {
		s, err := vo.NewTicketStatus(status)
		if err != nil {
			return d, apperrors.NewValidationError(err.Error())
		}
		d.Status = s
	}
	return d, nil
}

type CreateTicketUseCase struct {
	ticketRepo ticket.Repository
	publisher  events.EventPublisher
	normalizer *biztime.Normalizer
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	publisher events.EventPublisher,
	normalizer *biztime.Normalizer,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		normalizer: normalizer,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*ticket.Ticket, error) {
	uc.logger.Infow("executing create ticket use case", "caller", cmd.Caller, "actor", cmd.Actor)

	d, err := detailsFrom(cmd.Caller, cmd.Reason, cmd.Tags, "", cmd.IsGLPI, cmd.IsBlocking)
	if err != nil {
		return nil, err
	}

	ticketID, err := id.NewTicketID()
	if err != nil {
		return nil, apperrors.WrapInternal(err, "failed to generate ticket id")
	}

	t, err := ticket.NewTicket(ticketID, d, cmd.Actor, uc.normalizer.Now())
	if err != nil {
		uc.logger.Warnw("invalid ticket", "error", err)
		return nil, translateError(err, "create ticket")
	}

	if err := uc.ticketRepo.Create(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, translateError(err, "save ticket")
	}

	publishEvents(ctx, uc.publisher, uc.logger, t.GetEvents())
	t.ClearEvents()

	uc.logger.Infow("ticket created successfully", "ticket_id", t.ID(), "is_glpi", t.IsGLPI())
	return t, nil
}
