package ticket

import (
	"context"

	"github.com/hotline-inc/hotline/internal/shared/biztime"
)

// Repository persists tickets and their messages. Lookups of an unknown id
// return an error wrapping ErrNotFound.
type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	// Update writes the editable fields and the last-modified stamp. It never
	// touches the archive state.
	Update(ctx context.Context, t *Ticket) error
	// MarkArchived writes the archive state only.
	MarkArchived(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id string) (*Ticket, error)
	// Delete removes the ticket row and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter Filter) ([]*Ticket, error)
	// ArchiveCreatedBefore archives every active ticket created before cutoff
	// and returns the ids this call archived. Tickets archived concurrently
	// by someone else are left out.
	ArchiveCreatedBefore(ctx context.Context, cutoff biztime.Instant, actor string, now biztime.Instant) ([]string, error)
	// CreatedBetween returns tickets created in [from, to] whatever their archive state.
	CreatedBetween(ctx context.Context, from, to biztime.Instant) ([]*Ticket, error)

	CreateMessage(ctx context.Context, m *Message) error
	ListMessages(ctx context.Context, ticketID string) ([]*Message, error)
	DeleteMessages(ctx context.Context, ticketID string) (int64, error)
}

// Filter selects tickets for List. Results are ordered by createdAt, newest first.
type Filter struct {
	Archived bool
	// Search matches caller or reason case-insensitively, or a tag exactly.
	Search string
	// CreatedFrom and CreatedTo are inclusive bounds; zero means unbounded.
	CreatedFrom biztime.Instant
	CreatedTo   biztime.Instant
	// WithMessages loads each ticket's messages.
	WithMessages bool
}
