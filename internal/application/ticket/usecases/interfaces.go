package usecases

import (
	"context"

	"github.com/hotline-inc/hotline/internal/application/ticket/dto"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
)

// Transactor runs fn inside a database transaction carried by ctx.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ImageStore holds uploaded image bytes.
type ImageStore interface {
	PutImage(ctx context.Context, ticketID, ext string, data []byte, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*ticket.Ticket, error)
}

type EditTicketExecutor interface {
	Execute(ctx context.Context, cmd EditTicketCommand) (*ticket.Ticket, error)
}

type ArchiveTicketExecutor interface {
	Execute(ctx context.Context, cmd ArchiveTicketCommand) (*ticket.Ticket, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*ticket.Ticket, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) ([]*ticket.Ticket, error)
}

type AppendMessageExecutor interface {
	Execute(ctx context.Context, cmd AppendMessageCommand) (*ticket.Message, error)
}

type ListMessagesExecutor interface {
	Execute(ctx context.Context, query ListMessagesQuery) ([]*ticket.Message, error)
}

type ReorderMessagesExecutor interface {
	Execute(ctx context.Context, cmd ReorderMessagesCommand) error
}

type UploadImageExecutor interface {
	Execute(ctx context.Context, cmd UploadImageCommand) (*ticket.Message, error)
}

type ArchiveExpiredTicketsExecutor interface {
	Execute(ctx context.Context) (int, error)
}

type DailyReportExecutor interface {
	Execute(ctx context.Context, query DailyReportQuery) (*dto.DailyReportDTO, error)
}
