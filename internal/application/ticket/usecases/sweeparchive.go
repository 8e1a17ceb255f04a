package usecases

import (
	"context"
	"time"

	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// DefaultArchiveMaxAge is how long a ticket stays active.
const DefaultArchiveMaxAge = 24 * time.Hour

// ArchiveExpiredTicketsUseCase archives every active ticket older than maxAge.
// It runs from the scheduler and from the sweep command.
type ArchiveExpiredTicketsUseCase struct {
	ticketRepo ticket.Repository
	publisher  events.EventPublisher
	normalizer *biztime.Normalizer
	maxAge     time.Duration
	logger     logger.Interface
}

func NewArchiveExpiredTicketsUseCase(
	ticketRepo ticket.Repository,
	publisher events.EventPublisher,
	normalizer *biztime.Normalizer,
	maxAge time.Duration,
	logger logger.Interface,
) *ArchiveExpiredTicketsUseCase {
	if maxAge <= 0 {
		maxAge = DefaultArchiveMaxAge
	}
	return &ArchiveExpiredTicketsUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		normalizer: normalizer,
		maxAge:     maxAge,
		logger:     logger,
	}
}

// Execute returns the number of tickets archived by this run.
func (uc *ArchiveExpiredTicketsUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.normalizer.Now()
	cutoff := now.Add(-uc.maxAge)

	uc.logger.Infow("executing archive sweep use case", "cutoff", uc.normalizer.FormatUTC(cutoff))

	ids, err := uc.ticketRepo.ArchiveCreatedBefore(ctx, cutoff, ticket.SystemActor, now)
	if err != nil {
		uc.logger.Errorw("archive sweep failed", "error", err)
		return 0, translateError(err, "archive expired tickets")
	}

	evts := make([]events.DomainEvent, 0, len(ids))
	for _, ticketID := range ids {
		evts = append(evts, ticket.NewTicketArchivedEvent(ticketID, ticket.SystemActor, now))
	}
	publishEvents(ctx, uc.publisher, uc.logger, evts)

	uc.logger.Infow("archive sweep completed", "archived", len(ids))
	return len(ids), nil
}
