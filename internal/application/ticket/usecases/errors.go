package usecases

import (
	"context"
	"errors"

	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	apperrors "github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// translateError maps domain and repository errors to application errors.
func translateError(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, ticket.ErrNotFound):
		return apperrors.NewNotFoundError("ticket not found")
	case errors.Is(err, ticket.ErrInvalidTicket), errors.Is(err, ticket.ErrInvalidMessage):
		return apperrors.NewValidationError(err.Error())
	default:
		return apperrors.WrapInternal(err, "failed to "+action)
	}
}

// publishEvents delivers events after the write committed. Delivery failures
// are logged; the write already succeeded.
func publishEvents(ctx context.Context, publisher events.EventPublisher, log logger.Interface, evts []events.DomainEvent) {
	if publisher == nil || len(evts) == 0 {
		return
	}
	if err := publisher.PublishAll(ctx, evts); err != nil {
		log.Warnw("failed to publish ticket events", "count", len(evts), "error", err)
	}
}
