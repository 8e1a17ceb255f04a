package ticket

import (
	"context"
	"time"

	"github.com/hotline-inc/hotline/internal/application/ticket/dto"
	"github.com/hotline-inc/hotline/internal/application/ticket/usecases"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	vo "github.com/hotline-inc/hotline/internal/domain/ticket/valueobjects"
	"github.com/hotline-inc/hotline/internal/infrastructure/storage"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	"github.com/hotline-inc/hotline/internal/shared/logger"
	"github.com/hotline-inc/hotline/internal/shared/services/markdown"
)

var testNow = biztime.NewInstant(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))

func newTestPresenter() *dto.Presenter {
	n := biztime.MustNewNormalizer("Europe/Paris", biztime.ConversionZone, biztime.FixedClock{At: testNow})
	return dto.NewPresenter(n, markdown.NewRenderer(), logger.NewNop())
}

func newTestTicket(id string) *ticket.Ticket {
	t, err := ticket.NewTicket(id, ticket.Details{Caller: "Alice", Reason: "printer", Tags: []string{"hw"}}, "bob", testNow)
	if err != nil {
		panic(err)
	}
	t.ClearEvents()
	return t
}

func newTestMessage(id, ticketID, content string, mt vo.MessageType) *ticket.Message {
	m, err := ticket.NewMessage(id, ticketID, content, mt, "bob", testNow)
	if err != nil {
		panic(err)
	}
	return m
}

type mockCreateTicket struct {
	got usecases.CreateTicketCommand
	fn  func(cmd usecases.CreateTicketCommand) (*ticket.Ticket, error)
}

func (m *mockCreateTicket) Execute(_ context.Context, cmd usecases.CreateTicketCommand) (*ticket.Ticket, error) {
	m.got = cmd
	return m.fn(cmd)
}

type mockEditTicket struct {
	got usecases.EditTicketCommand
	fn  func(cmd usecases.EditTicketCommand) (*ticket.Ticket, error)
}

func (m *mockEditTicket) Execute(_ context.Context, cmd usecases.EditTicketCommand) (*ticket.Ticket, error) {
	m.got = cmd
	return m.fn(cmd)
}

type mockArchiveTicket struct {
	got usecases.ArchiveTicketCommand
	fn  func(cmd usecases.ArchiveTicketCommand) (*ticket.Ticket, error)
}

func (m *mockArchiveTicket) Execute(_ context.Context, cmd usecases.ArchiveTicketCommand) (*ticket.Ticket, error) {
	m.got = cmd
	return m.fn(cmd)
}

type mockGetTicket struct {
	fn func(query usecases.GetTicketQuery) (*ticket.Ticket, error)
}

func (m *mockGetTicket) Execute(_ context.Context, query usecases.GetTicketQuery) (*ticket.Ticket, error) {
	return m.fn(query)
}

type mockDeleteTicket struct {
	got usecases.DeleteTicketCommand
	fn  func(cmd usecases.DeleteTicketCommand) (*usecases.DeleteTicketResult, error)
}

func (m *mockDeleteTicket) Execute(_ context.Context, cmd usecases.DeleteTicketCommand) (*usecases.DeleteTicketResult, error) {
	m.got = cmd
	return m.fn(cmd)
}

type mockListTickets struct {
	got usecases.ListTicketsQuery
	fn  func(query usecases.ListTicketsQuery) ([]*ticket.Ticket, error)
}

func (m *mockListTickets) Execute(_ context.Context, query usecases.ListTicketsQuery) ([]*ticket.Ticket, error) {
	m.got = query
	return m.fn(query)
}

type mockAppendMessage struct {
	got usecases.AppendMessageCommand
	fn  func(cmd usecases.AppendMessageCommand) (*ticket.Message, error)
}

func (m *mockAppendMessage) Execute(_ context.Context, cmd usecases.AppendMessageCommand) (*ticket.Message, error) {
	m.got = cmd
	return m.fn(cmd)
}

type mockListMessages struct {
	fn func(query usecases.ListMessagesQuery) ([]*ticket.Message, error)
}

func (m *mockListMessages) Execute(_ context.Context, query usecases.ListMessagesQuery) ([]*ticket.Message, error) {
	return m.fn(query)
}

type mockReorderMessages struct {
	got usecases.ReorderMessagesCommand
	err error
}

func (m *mockReorderMessages) Execute(_ context.Context, cmd usecases.ReorderMessagesCommand) error {
	m.got = cmd
	return m.err
}

type mockUploadImage struct {
	got    usecases.UploadImageCommand
	called bool
	fn     func(cmd usecases.UploadImageCommand) (*ticket.Message, error)
}

func (m *mockUploadImage) Execute(_ context.Context, cmd usecases.UploadImageCommand) (*ticket.Message, error) {
	m.called = true
	m.got = cmd
	return m.fn(cmd)
}

type mockDailyReport struct {
	got usecases.DailyReportQuery
	fn  func(query usecases.DailyReportQuery) (*dto.DailyReportDTO, error)
}

func (m *mockDailyReport) Execute(_ context.Context, query usecases.DailyReportQuery) (*dto.DailyReportDTO, error) {
	m.got = query
	return m.fn(query)
}

type mockImageReader struct {
	objects map[string]*storage.Object
	err     error
}

func (m *mockImageReader) Get(_ context.Context, key string) (*storage.Object, error) {
	if m.err != nil {
		return nil, m.err
	}
	obj, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return obj, nil
}
