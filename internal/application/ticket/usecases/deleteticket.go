package usecases

import (
	"context"

	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

type DeleteTicketCommand struct {
	TicketID string
	Actor    string
}

type DeleteTicketResult struct {
	Deleted         bool
	MessagesDeleted int
}

type DeleteTicketUseCase struct {
	ticketRepo ticket.Repository
	txMgr      Transactor
	images     ImageStore
	publisher  events.EventPublisher
	normalizer *biztime.Normalizer
	logger     logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.Repository,
	txMgr Transactor,
	images ImageStore,
	publisher events.EventPublisher,
	normalizer *biztime.Normalizer,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		txMgr:      txMgr,
		images:     images,
		publisher:  publisher,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Execute removes the ticket and all its messages in one transaction, then
// removes stored image files. Deleting an unknown ticket is a no-op.
func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error) {
	uc.logger.Infow("executing delete ticket use case", "ticket_id", cmd.TicketID, "actor", cmd.Actor)

	var (
		result   DeleteTicketResult
		fileKeys []string
	)

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		messages, err := uc.ticketRepo.ListMessages(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		for _, m := range messages {
			if key, ok := m.StoredFileKey(); ok {
				fileKeys = append(fileKeys, key)
			}
		}

		n, err := uc.ticketRepo.DeleteMessages(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		result.MessagesDeleted = int(n)

		result.Deleted, err = uc.ticketRepo.Delete(txCtx, cmd.TicketID)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, translateError(err, "delete ticket")
	}

	if uc.images != nil {
		for _, key := range fileKeys {
			if err := uc.images.DeleteFile(ctx, key); err != nil {
				uc.logger.Warnw("failed to delete stored image", "ticket_id", cmd.TicketID, "key", key, "error", err)
			}
		}
	}

	if !result.Deleted {
		uc.logger.Infow("ticket not found, nothing deleted", "ticket_id", cmd.TicketID)
		return &result, nil
	}

	publishEvents(ctx, uc.publisher, uc.logger, []events.DomainEvent{
		ticket.NewTicketDeletedEvent(cmd.TicketID, result.MessagesDeleted, uc.normalizer.Now()),
	})

	uc.logger.Infow("ticket deleted successfully",
		"ticket_id", cmd.TicketID,
		"messages_deleted", result.MessagesDeleted,
		"files_deleted", len(fileKeys),
	)
	return &result, nil
}
