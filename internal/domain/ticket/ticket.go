package ticket

import (
	"fmt"
	"strings"

	vo "github.com/hotline-inc/hotline/internal/domain/ticket/valueobjects"
	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
)

const (
	maxCallerLength = 255
	maxReasonLength = 500
	maxTagLength    = 100

	// SystemActor is recorded as archivedBy when the sweeper archives a ticket.
	SystemActor = "system"
)

// Details are the user-editable fields of a ticket.
type Details struct {
	Caller     string
	Reason     string
	Tags       []string
	Status     vo.TicketStatus
	IsGLPI     bool
	IsBlocking bool
}

// normalize trims input and applies the GLPI rule: a ticket forwarded to GLPI
// keeps no reason and no tags.
func (d Details) normalize() Details {
	out := Details{
		Caller:     strings.TrimSpace(d.Caller),
		Reason:     strings.TrimSpace(d.Reason),
		Tags:       NormalizeTags(d.Tags),
		Status:     d.Status,
		IsGLPI:     d.IsGLPI,
		IsBlocking: d.IsBlocking,
	}
	if out.Status == "" {
		out.Status = vo.StatusOpen
	}
	if out.IsGLPI {
		out.Reason = ""
		out.Tags = []string{}
	}
	return out
}

func (d Details) validate() error {
	if d.Caller == "" {
		return fmt.Errorf("%w: caller is required", ErrInvalidTicket)
	}
	if len(d.Caller) > maxCallerLength {
		return fmt.Errorf("%w: caller exceeds maximum length of %d characters", ErrInvalidTicket, maxCallerLength)
	}
	if !d.IsGLPI && d.Reason == "" {
		return fmt.Errorf("%w: reason is required unless the ticket is a GLPI ticket", ErrInvalidTicket)
	}
	if len(d.Reason) > maxReasonLength {
		return fmt.Errorf("%w: reason exceeds maximum length of %d characters", ErrInvalidTicket, maxReasonLength)
	}
	for _, tag := range d.Tags {
		if len(tag) > maxTagLength {
			return fmt.Errorf("%w: tag %q exceeds maximum length of %d characters", ErrInvalidTicket, tag, maxTagLength)
		}
	}
	if !d.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", ErrInvalidTicket, d.Status)
	}
	return nil
}

// NormalizeTags trims each tag, drops empty ones and removes duplicates while
// keeping the first occurrence order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// Ticket is a logged support call.
type Ticket struct {
	id             string
	caller         string
	reason         string
	tags           []string
	status         vo.TicketStatus
	isGLPI         bool
	isBlocking     bool
	isArchived     bool
	createdBy      string
	createdAt      biztime.Instant
	lastModifiedBy string
	lastModifiedAt biztime.Instant
	archivedBy     string
	archivedAt     biztime.Instant
	messages       []*Message
	events         []events.DomainEvent
}

// NewTicket validates d and builds an open, unarchived ticket.
func NewTicket(id string, d Details, actor string, now biztime.Instant) (*Ticket, error) {
	if id == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if strings.TrimSpace(actor) == "" {
		return nil, fmt.Errorf("%w: actor is required", ErrInvalidTicket)
	}
	d = d.normalize()
	if err := d.validate(); err != nil {
		return nil, err
	}

	t := &Ticket{
		id:         id,
		caller:     d.Caller,
		reason:     d.Reason,
		tags:       d.Tags,
		status:     vo.StatusOpen,
		isGLPI:     d.IsGLPI,
		isBlocking: d.IsBlocking,
		createdBy:  actor,
		createdAt:  now,
		messages:   []*Message{},
	}
	t.recordEvent(NewTicketCreatedEvent(t, now))
	return t, nil
}

// ReconstructTicket rebuilds a ticket from storage without validation or events.
func ReconstructTicket(
	id string,
	d Details,
	isArchived bool,
	createdBy string,
	createdAt biztime.Instant,
	lastModifiedBy string,
	lastModifiedAt biztime.Instant,
	archivedBy string,
	archivedAt biztime.Instant,
) (*Ticket, error) {
	if id == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !d.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", d.Status)
	}

	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Ticket{
		id:             id,
		caller:         d.Caller,
		reason:         d.Reason,
		tags:           tags,
		status:         d.Status,
		isGLPI:         d.IsGLPI,
		isBlocking:     d.IsBlocking,
		isArchived:     isArchived,
		createdBy:      createdBy,
		createdAt:      createdAt,
		lastModifiedBy: lastModifiedBy,
		lastModifiedAt: lastModifiedAt,
		archivedBy:     archivedBy,
		archivedAt:     archivedAt,
		messages:       []*Message{},
	}, nil
}

func (t *Ticket) ID() string { return t.id }

func (t *Ticket) Caller() string { return t.caller }

func (t *Ticket) Reason() string { return t.reason }

func (t *Ticket) Tags() []string {
	tagsCopy := make([]string, len(t.tags))
	copy(tagsCopy, t.tags)
	return tagsCopy
}

func (t *Ticket) Status() vo.TicketStatus { return t.status }

func (t *Ticket) IsGLPI() bool { return t.isGLPI }

func (t *Ticket) IsBlocking() bool { return t.isBlocking }

func (t *Ticket) IsArchived() bool { return t.isArchived }

func (t *Ticket) CreatedBy() string { return t.createdBy }

func (t *Ticket) CreatedAt() biztime.Instant { return t.createdAt }

func (t *Ticket) LastModifiedBy() string { return t.lastModifiedBy }

// LastModifiedAt is zero until the first edit.
func (t *Ticket) LastModifiedAt() biztime.Instant { return t.lastModifiedAt }

func (t *Ticket) ArchivedBy() string { return t.archivedBy }

// ArchivedAt is zero while the ticket is active.
func (t *Ticket) ArchivedAt() biztime.Instant { return t.archivedAt }

// Details returns the editable fields as currently stored.
func (t *Ticket) Details() Details {
	return Details{
		Caller:     t.caller,
		Reason:     t.reason,
		Tags:       t.Tags(),
		Status:     t.status,
		IsGLPI:     t.isGLPI,
		IsBlocking: t.isBlocking,
	}
}

func (t *Ticket) Messages() []*Message {
	messagesCopy := make([]*Message, len(t.messages))
	copy(messagesCopy, t.messages)
	return messagesCopy
}

// AttachMessages replaces the loaded messages. Used by repositories.
func (t *Ticket) AttachMessages(messages []*Message) {
	if messages == nil {
		messages = []*Message{}
	}
	t.messages = messages
}

// Edit overwrites the editable fields. createdAt and createdBy never change.
func (t *Ticket) Edit(d Details, actor string, now biztime.Instant) error {
	if strings.TrimSpace(actor) == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidTicket)
	}
	if d.Status == "" {
		d.Status = t.status
	}
	d = d.normalize()
	if err := d.validate(); err != nil {
		return err
	}

	t.caller = d.Caller
	t.reason = d.Reason
	t.tags = d.Tags
	t.status = d.Status
	t.isGLPI = d.IsGLPI
	t.isBlocking = d.IsBlocking
	t.lastModifiedBy = actor
	t.lastModifiedAt = now

	t.recordEvent(NewTicketEditedEvent(t, now))
	return nil
}

// Archive marks the ticket archived. Archiving an archived ticket
// overwrites archivedAt and archivedBy.
func (t *Ticket) Archive(actor string, now biztime.Instant) {
	t.isArchived = true
	t.archivedAt = now
	t.archivedBy = actor

	t.recordEvent(NewTicketArchivedEvent(t.id, actor, now))
}

// AcceptsMessages reports whether messages may be appended. GLPI tickets are
// tracked in GLPI and carry no messages here.
func (t *Ticket) AcceptsMessages() bool {
	return !t.isGLPI
}

func (t *Ticket) recordEvent(e events.DomainEvent) {
	t.events = append(t.events, e)
}

// GetEvents returns the events recorded since the last ClearEvents.
func (t *Ticket) GetEvents() []events.DomainEvent {
	out := make([]events.DomainEvent, len(t.events))
	copy(out, t.events)
	return out
}

func (t *Ticket) ClearEvents() {
	t.events = nil
}
