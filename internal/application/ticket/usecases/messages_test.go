package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotline-inc/hotline/internal/domain/ticket"
	vo "github.com/hotline-inc/hotline/internal/domain/ticket/valueobjects"
	apperrors "github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

func ticketsByID(tickets ...*ticket.Ticket) func(ctx context.Context, id string) (*ticket.Ticket, error) {
	return func(ctx context.Context, id string) (*ticket.Ticket, error) {
		for _, t := range tickets {
			if t.ID() == id {
				return t, nil
			}
		}
		return nil, ticket.ErrNotFound
	}
}

func TestAppendMessageUseCase_Execute(t *testing.T) {
	regular := newStoredTicket("tk_1", ticket.Details{Caller: "Alice", Reason: "printer jam"}, testNow)
	glpi := newStoredTicket("tk_glpi", ticket.Details{Caller: "Alice", IsGLPI: true}, testNow)

	tests := []struct {
		name    string
		command AppendMessageCommand
		wantErr func(error) bool
		check   func(t *testing.T, m *ticket.Message)
	}{
		{
			name:    "text message defaults",
			command: AppendMessageCommand{TicketID: "tk_1", Content: "  called back  ", Actor: "bob"},
			check: func(t *testing.T, m *ticket.Message) {
				assert.True(t, strings.HasPrefix(m.ID(), "msg_"))
				assert.Equal(t, "called back", m.Content())
				assert.Equal(t, vo.MessageTypeText, m.Type())
				assert.Equal(t, "bob", m.Author())
				assert.True(t, m.CreatedAt().Equal(testNow))
			},
		},
		{
			name:    "image reference",
			command: AppendMessageCommand{TicketID: "tk_1", Content: "https://example.com/a.png", Type: "image", Actor: "bob"},
			check: func(t *testing.T, m *ticket.Message) {
				assert.Equal(t, vo.MessageTypeImage, m.Type())
			},
		},
		{
			name:    "image stored for this ticket",
			command: AppendMessageCommand{TicketID: "tk_1", Content: "tickets/tk_1/a.png", Type: "image", Actor: "bob"},
			check: func(t *testing.T, m *ticket.Message) {
				key, ok := m.StoredFileKey()
				assert.True(t, ok)
				assert.Equal(t, "tickets/tk_1/a.png", key)
			},
		},
		{
			name:    "image stored for another ticket",
			command: AppendMessageCommand{TicketID: "tk_1", Content: "tickets/tk_other/a.png", Type: "image", Actor: "bob"},
			wantErr: apperrors.IsValidationError,
		},
		{
			name:    "image that is neither url nor key",
			command: AppendMessageCommand{TicketID: "tk_1", Content: "screenshot", Type: "image", Actor: "bob"},
			wantErr: apperrors.IsValidationError,
		},
		{
			name:    "empty content",
			command: AppendMessageCommand{TicketID: "tk_1", Content: "   ", Actor: "bob"},
			wantErr: apperrors.IsValidationError,
		},
		{
			name:    "unknown type",
			command: AppendMessageCommand{TicketID: "tk_1", Content: "x", Type: "video", Actor: "bob"},
			wantErr: apperrors.IsValidationError,
		},
		{
			name:    "missing ticket",
			command: AppendMessageCommand{TicketID: "tk_none", Content: "x", Actor: "bob"},
			wantErr: apperrors.IsNotFoundError,
		},
		{
			name:    "GLPI ticket",
			command: AppendMessageCommand{TicketID: "tk_glpi", Content: "x", Actor: "bob"},
			wantErr: apperrors.IsNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved *ticket.Message
			repo := &mockTicketRepository{
				GetByIDFunc: ticketsByID(regular, glpi),
				CreateMessageFunc: func(ctx context.Context, m *ticket.Message) error {
					saved = m
					return nil
				},
			}
			publisher := &mockEventPublisher{}

			uc := NewAppendMessageUseCase(repo, publisher, newTestNormalizer(), logger.NewNop())
			result, err := uc.Execute(context.Background(), tt.command)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
				assert.Nil(t, saved)
				return
			}

			require.NoError(t, err)
			assert.Same(t, saved, result)
			assert.Equal(t, []string{ticket.EventTypeMessageAppended}, publisher.types())
			tt.check(t, result)
		})
	}
}

func TestListMessagesUseCase_Execute(t *testing.T) {
	tkt := newStoredTicket("tk_1", ticket.Details{Caller: "Alice", Reason: "x"}, testNow)
	tkt.AttachMessages([]*ticket.Message{
		newStoredMessage("msg_1", "tk_1", "first", vo.MessageTypeText),
		newStoredMessage("msg_2", "tk_1", "second", vo.MessageTypeText),
	})
	repo := &mockTicketRepository{GetByIDFunc: ticketsByID(tkt)}

	uc := NewListMessagesUseCase(repo, logger.NewNop())

	messages, err := uc.Execute(context.Background(), ListMessagesQuery{TicketID: "tk_1"})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "msg_1", messages[0].ID())

	_, err = uc.Execute(context.Background(), ListMessagesQuery{TicketID: "tk_none"})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestReorderMessagesUseCase_Execute(t *testing.T) {
	tkt := newStoredTicket("tk_1", ticket.Details{Caller: "Alice", Reason: "x"}, testNow)
	repo := &mockTicketRepository{
		GetByIDFunc: ticketsByID(tkt),
		UpdateFunc: func(ctx context.Context, t2 *ticket.Ticket) error {
			t.Fatal("reorder must not write")
			return nil
		},
	}

	uc := NewReorderMessagesUseCase(repo, logger.NewNop())

	err := uc.Execute(context.Background(), ReorderMessagesCommand{TicketID: "tk_1", MessageIDs: []string{"msg_2", "msg_1"}, Actor: "bob"})
	require.NoError(t, err)

	err = uc.Execute(context.Background(), ReorderMessagesCommand{TicketID: "tk_none", Actor: "bob"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))

	err = uc.Execute(context.Background(), ReorderMessagesCommand{TicketID: "tk_1", MessageIDs: []string{"msg_1", "tk_1"}, Actor: "bob"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}
