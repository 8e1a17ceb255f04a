package usecases

import (
	"context"
	"errors"

	"github.com/hotline-inc/hotline/internal/domain/savedfield"
	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// MemoizeTicketFieldsHandler remembers the caller, reason and tags of every
// created or edited ticket that is not tracked in GLPI.
type MemoizeTicketFieldsHandler struct {
	remember RememberExecutor
	logger   logger.Interface
}

func NewMemoizeTicketFieldsHandler(remember RememberExecutor, logger logger.Interface) *MemoizeTicketFieldsHandler {
	return &MemoizeTicketFieldsHandler{remember: remember, logger: logger}
}

// EventTypes lists the events the handler subscribes to.
func (h *MemoizeTicketFieldsHandler) EventTypes() []string {
	return []string{ticket.EventTypeTicketCreated, ticket.EventTypeTicketEdited}
}

func (h *MemoizeTicketFieldsHandler) CanHandle(eventType string) bool {
	return eventType == ticket.EventTypeTicketCreated || eventType == ticket.EventTypeTicketEdited
}

func (h *MemoizeTicketFieldsHandler) Handle(ctx context.Context, event events.DomainEvent) error {
	var (
		caller, reason string
		tags           []string
		isGLPI         bool
	)

	switch e := event.(type) {
	case ticket.TicketCreatedEvent:
		caller, reason, tags, isGLPI = e.Caller, e.Reason, e.Tags, e.IsGLPI
	case ticket.TicketEditedEvent:
		caller, reason, tags, isGLPI = e.Caller, e.Reason, e.Tags, e.IsGLPI
	default:
		return nil
	}

	if isGLPI {
		return nil
	}

	cmds := make([]RememberCommand, 0, 2+len(tags))
	cmds = append(cmds,
		RememberCommand{Type: savedfield.FieldCaller.String(), Value: caller},
		RememberCommand{Type: savedfield.FieldReason.String(), Value: reason},
	)
	for _, tag := range tags {
		cmds = append(cmds, RememberCommand{Type: savedfield.FieldTag.String(), Value: tag})
	}

	var errs []error
	for _, cmd := range cmds {
		if _, err := h.remember.Execute(ctx, cmd); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		h.logger.Warnw("failed to memoize ticket fields", "ticket_id", event.GetAggregateID(), "failures", len(errs))
	}
	return errors.Join(errs...)
}
