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

// AppendMessageCommand adds a note to a ticket. An empty Type means text.
type AppendMessageCommand struct {
	TicketID string
	Content  string
	Type     string
	Actor    string
}

type AppendMessageUseCase struct {
	ticketRepo ticket.Repository
	publisher  events.EventPublisher
	normalizer *biztime.Normalizer
	logger     logger.Interface
}

func NewAppendMessageUseCase(
	ticketRepo ticket.Repository,
	publisher events.EventPublisher,
	normalizer *biztime.Normalizer,
	logger logger.Interface,
) *AppendMessageUseCase {
	return &AppendMessageUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		normalizer: normalizer,
		logger:     logger,
	}
}

func (uc *AppendMessageUseCase) Execute(ctx context.Context, cmd AppendMessageCommand) (*ticket.Message, error) {
	uc.logger.Infow("executing append message use case", "ticket_id", cmd.TicketID, "actor", cmd.Actor)

	messageType := vo.MessageTypeText
	if cmd.Type != "" {
		mt, err := vo.NewMessageType(cmd.Type)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		messageType = mt
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, translateError(err, "get ticket")
	}

	return appendToTicket(ctx, uc.ticketRepo, uc.publisher, uc.normalizer, uc.logger, t, cmd.Content, messageType, cmd.Actor)
}

// appendToTicket stores a new message on t. GLPI tickets are reported as
// not found since they carry no messages.
func appendToTicket(
	ctx context.Context,
	repo ticket.Repository,
	publisher events.EventPublisher,
	normalizer *biztime.Normalizer,
	log logger.Interface,
	t *ticket.Ticket,
	content string,
	messageType vo.MessageType,
	actor string,
) (*ticket.Message, error) {
	if !t.AcceptsMessages() {
		log.Warnw("message rejected for GLPI ticket", "ticket_id", t.ID())
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	messageID, err := id.NewMessageID()
	if err != nil {
		return nil, apperrors.WrapInternal(err, "failed to generate message id")
	}

	m, err := ticket.NewMessage(messageID, t.ID(), content, messageType, actor, normalizer.Now())
	if err != nil {
		return nil, translateError(err, "create message")
	}

	if err := repo.CreateMessage(ctx, m); err != nil {
		log.Errorw("failed to save message", "ticket_id", t.ID(), "error", err)
		return nil, translateError(err, "save message")
	}

	publishEvents(ctx, publisher, log, []events.DomainEvent{ticket.NewMessageAppendedEvent(m)})

	log.Infow("message appended successfully", "ticket_id", t.ID(), "message_id", m.ID(), "type", m.Type().String())
	return m, nil
}
