package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotline-inc/hotline/internal/domain/savedfield"
	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

var memoNow = biztime.NewInstant(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))

func newMemoizer(repo *memoryRepository) *MemoizeTicketFieldsHandler {
	return NewMemoizeTicketFieldsHandler(NewRememberUseCase(repo, nil, logger.NewNop()), logger.NewNop())
}

func TestMemoizeTicketFieldsHandler_Created(t *testing.T) {
	repo := newMemoryRepository()
	h := newMemoizer(repo)

	tkt, err := ticket.NewTicket("tk_1", ticket.Details{
		Caller: "Alice",
		Reason: "printer jam",
		Tags:   []string{"hardware", "printer"},
	}, "bob", memoNow)
	require.NoError(t, err)

	for _, e := range tkt.GetEvents() {
		require.True(t, h.CanHandle(e.GetEventType()))
		require.NoError(t, h.Handle(context.Background(), e))
	}

	assert.True(t, repo.has(savedfield.FieldCaller, "Alice"))
	assert.True(t, repo.has(savedfield.FieldReason, "printer jam"))
	assert.True(t, repo.has(savedfield.FieldTag, "hardware"))
	assert.True(t, repo.has(savedfield.FieldTag, "printer"))
	assert.Equal(t, 4, repo.count())
}

func TestMemoizeTicketFieldsHandler_SkipsGLPIEdit(t *testing.T) {
	repo := newMemoryRepository()
	h := newMemoizer(repo)

	tkt, err := ticket.NewTicket("tk_1", ticket.Details{Caller: "Alice", Reason: "printer jam"}, "bob", memoNow)
	require.NoError(t, err)
	tkt.ClearEvents()

	require.NoError(t, tkt.Edit(ticket.Details{Caller: "Zed", Reason: "new reason", IsGLPI: true}, "bob", memoNow))
	for _, e := range tkt.GetEvents() {
		require.NoError(t, h.Handle(context.Background(), e))
	}

	assert.Zero(t, repo.count())
}

func TestMemoizeTicketFieldsHandler_WithDispatcher(t *testing.T) {
	repo := newMemoryRepository()
	h := newMemoizer(repo)
	dispatcher := events.NewSyncEventDispatcher(logger.NewNop())
	for _, eventType := range h.EventTypes() {
		require.NoError(t, dispatcher.Subscribe(eventType, h))
	}

	tkt, err := ticket.NewTicket("tk_1", ticket.Details{Caller: "Alice", Reason: "jam"}, "bob", memoNow)
	require.NoError(t, err)
	require.NoError(t, dispatcher.PublishAll(context.Background(), tkt.GetEvents()))

	assert.Equal(t, 2, repo.count())
	assert.False(t, h.CanHandle(ticket.EventTypeTicketArchived))
}

func TestMemoizeTicketFieldsHandler_PropagatesFailures(t *testing.T) {
	repo := newMemoryRepository()
	repo.failing = true
	h := newMemoizer(repo)

	tkt, err := ticket.NewTicket("tk_1", ticket.Details{Caller: "Alice", Reason: "jam"}, "bob", memoNow)
	require.NoError(t, err)

	assert.Error(t, h.Handle(context.Background(), tkt.GetEvents()[0]))
}
