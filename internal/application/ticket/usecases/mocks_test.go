package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	vo "github.com/hotline-inc/hotline/internal/domain/ticket/valueobjects"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
)

var testNow = biztime.NewInstant(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))

func newTestNormalizer() *biztime.Normalizer {
	return biztime.MustNewNormalizer("Europe/Paris", biztime.ConversionZone, biztime.FixedClock{At: testNow})
}

type mockTicketRepository struct {
	CreateFunc               func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc               func(ctx context.Context, t *ticket.Ticket) error
	MarkArchivedFunc         func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc              func(ctx context.Context, id string) (*ticket.Ticket, error)
	DeleteFunc               func(ctx context.Context, id string) (bool, error)
	ListFunc                 func(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error)
	ArchiveCreatedBeforeFunc func(ctx context.Context, cutoff biztime.Instant, actor string, now biztime.Instant) ([]string, error)
	CreatedBetweenFunc       func(ctx context.Context, from, to biztime.Instant) ([]*ticket.Ticket, error)
	CreateMessageFunc        func(ctx context.Context, m *ticket.Message) error
	ListMessagesFunc         func(ctx context.Context, ticketID string) ([]*ticket.Message, error)
	DeleteMessagesFunc       func(ctx context.Context, ticketID string) (int64, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ticket.ErrNotFound
}

func (m *mockTicketRepository) Delete(ctx context.Context, id string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *mockTicketRepository) MarkArchived(ctx context.Context, t *ticket.Ticket) error {
	if m.MarkArchivedFunc != nil {
		return m.MarkArchivedFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockTicketRepository) ArchiveCreatedBefore(ctx context.Context, cutoff biztime.Instant, actor string, now biztime.Instant) ([]string, error) {
	if m.ArchiveCreatedBeforeFunc != nil {
		return m.ArchiveCreatedBeforeFunc(ctx, cutoff, actor, now)
	}
	return nil, nil
}

func (m *mockTicketRepository) CreatedBetween(ctx context.Context, from, to biztime.Instant) ([]*ticket.Ticket, error) {
	if m.CreatedBetweenFunc != nil {
		return m.CreatedBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *mockTicketRepository) CreateMessage(ctx context.Context, msg *ticket.Message) error {
	if m.CreateMessageFunc != nil {
		return m.CreateMessageFunc(ctx, msg)
	}
	return nil
}

func (m *mockTicketRepository) ListMessages(ctx context.Context, ticketID string) ([]*ticket.Message, error) {
	if m.ListMessagesFunc != nil {
		return m.ListMessagesFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) DeleteMessages(ctx context.Context, ticketID string) (int64, error) {
	if m.DeleteMessagesFunc != nil {
		return m.DeleteMessagesFunc(ctx, ticketID)
	}
	return 0, nil
}

type mockEventPublisher struct {
	published  []events.DomainEvent
	PublishErr error
}

func (m *mockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	m.published = append(m.published, event)
	return m.PublishErr
}

func (m *mockEventPublisher) PublishAll(ctx context.Context, evts []events.DomainEvent) error {
	m.published = append(m.published, evts...)
	return m.PublishErr
}

func (m *mockEventPublisher) types() []string {
	out := make([]string, 0, len(m.published))
	for _, e := range m.published {
		out = append(out, e.GetEventType())
	}
	return out
}

// mockTransactor runs fn inline and reports fn's error, as a rollback would.
type mockTransactor struct {
	calls int
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) PutImage(ctx context.Context, ticketID, ext string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, ticketID, ext, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockImageStore) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newStoredTicket(id string, d ticket.Details, createdAt biztime.Instant) *ticket.Ticket {
	if d.Status == "" {
		d.Status = vo.StatusOpen
	}
	t, err := ticket.ReconstructTicket(id, d, false, "alice", createdAt, "", biztime.Instant{}, "", biztime.Instant{})
	if err != nil {
		panic(err)
	}
	return t
}

func newStoredMessage(id, ticketID, content string, mt vo.MessageType) *ticket.Message {
	m, err := ticket.ReconstructMessage(id, ticketID, content, mt, "alice", testNow)
	if err != nil {
		panic(err)
	}
	return m
}
