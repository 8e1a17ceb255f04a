package ticket

import (
	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
)

const (
	EventTypeTicketCreated   = "ticket.created"
	EventTypeTicketEdited    = "ticket.edited"
	EventTypeTicketArchived  = "ticket.archived"
	EventTypeTicketDeleted   = "ticket.deleted"
	EventTypeMessageAppended = "ticket.message_appended"
)

// TicketCreatedEvent carries the fields the saved-field memoizer needs.
type TicketCreatedEvent struct {
	events.BaseEvent
	Caller    string   `json:"caller"`
	Reason    string   `json:"reason"`
	Tags      []string `json:"tags"`
	IsGLPI    bool     `json:"is_glpi"`
	CreatedBy string   `json:"created_by"`
}

func NewTicketCreatedEvent(t *Ticket, now biztime.Instant) TicketCreatedEvent {
	return TicketCreatedEvent{
		BaseEvent: events.NewBaseEvent(t.id, EventTypeTicketCreated, now.Time()),
		Caller:    t.caller,
		Reason:    t.reason,
		Tags:      t.Tags(),
		IsGLPI:    t.isGLPI,
		CreatedBy: t.createdBy,
	}
}

type TicketEditedEvent struct {
	events.BaseEvent
	Caller   string   `json:"caller"`
	Reason   string   `json:"reason"`
	Tags     []string `json:"tags"`
	IsGLPI   bool     `json:"is_glpi"`
	EditedBy string   `json:"edited_by"`
}

func NewTicketEditedEvent(t *Ticket, now biztime.Instant) TicketEditedEvent {
	return TicketEditedEvent{
		BaseEvent: events.NewBaseEvent(t.id, EventTypeTicketEdited, now.Time()),
		Caller:    t.caller,
		Reason:    t.reason,
		Tags:      t.Tags(),
		IsGLPI:    t.isGLPI,
		EditedBy:  t.lastModifiedBy,
	}
}

type TicketArchivedEvent struct {
	events.BaseEvent
	ArchivedBy string `json:"archived_by"`
}

func NewTicketArchivedEvent(ticketID, actor string, now biztime.Instant) TicketArchivedEvent {
	return TicketArchivedEvent{
		BaseEvent:  events.NewBaseEvent(ticketID, EventTypeTicketArchived, now.Time()),
		ArchivedBy: actor,
	}
}

type TicketDeletedEvent struct {
	events.BaseEvent
	MessageCount int `json:"message_count"`
}

func NewTicketDeletedEvent(ticketID string, messageCount int, now biztime.Instant) TicketDeletedEvent {
	return TicketDeletedEvent{
		BaseEvent:    events.NewBaseEvent(ticketID, EventTypeTicketDeleted, now.Time()),
		MessageCount: messageCount,
	}
}

type MessageAppendedEvent struct {
	events.BaseEvent
	MessageID   string `json:"message_id"`
	MessageType string `json:"message_type"`
	Author      string `json:"author"`
}

func NewMessageAppendedEvent(m *Message) MessageAppendedEvent {
	return MessageAppendedEvent{
		BaseEvent:   events.NewBaseEvent(m.ticketID, EventTypeMessageAppended, m.createdAt.Time()),
		MessageID:   m.id,
		MessageType: m.messageType.String(),
		Author:      m.author,
	}
}
