package usecases

import (
	"context"
	"strings"

	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	apperrors "github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// ListTicketsQuery selects active or archived tickets. Search and the date
// bounds apply to archived listings only; dates are YYYY-MM-DD UTC days,
// both inclusive.
type ListTicketsQuery struct {
	Archived     bool
	Search       string
	StartDate    string
	EndDate      string
	WithMessages bool
}

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) ([]*ticket.Ticket, error) {
	filter := ticket.Filter{
		Archived:     query.Archived,
		WithMessages: query.WithMessages,
	}

	if query.Archived {
		filter.Search = strings.TrimSpace(query.Search)

		if query.StartDate != "" {
			from, err := biztime.ParseDate(query.StartDate)
			if err != nil {
				return nil, apperrors.NewValidationError("invalid start date", err.Error())
			}
			filter.CreatedFrom = from
		}
		if query.EndDate != "" {
			to, err := biztime.ParseDate(query.EndDate)
			if err != nil {
				return nil, apperrors.NewValidationError("invalid end date", err.Error())
			}
			filter.CreatedTo = biztime.EndOfDay(to)
		}
		if !filter.CreatedFrom.IsZero() && !filter.CreatedTo.IsZero() && filter.CreatedTo.Before(filter.CreatedFrom) {
			return nil, apperrors.NewValidationError("end date is before start date")
		}
	}

	tickets, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "archived", query.Archived, "error", err)
		return nil, translateError(err, "list tickets")
	}

	uc.logger.Debugw("tickets listed", "archived", query.Archived, "count", len(tickets))
	return tickets, nil
}
