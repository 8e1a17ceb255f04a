package ticket

import (
	"fmt"
	"strings"

	vo "github.com/hotline-inc/hotline/internal/domain/ticket/valueobjects"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
)

const maxMessageLength = 10000

// Message is an append-only note attached to a ticket. For image messages
// content holds the storage key (or an external URL) of the image.
type Message struct {
	id          string
	ticketID    string
	content     string
	messageType vo.MessageType
	author      string
	createdAt   biztime.Instant
}

func NewMessage(
	id string,
	ticketID string,
	content string,
	messageType vo.MessageType,
	author string,
	now biztime.Instant,
) (*Message, error) {
	if id == "" {
		return nil, fmt.Errorf("message ID is required")
	}
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", ErrInvalidMessage)
	}
	if len(content) > maxMessageLength {
		return nil, fmt.Errorf("%w: content exceeds maximum length of %d characters", ErrInvalidMessage, maxMessageLength)
	}
	if !messageType.IsValid() {
		return nil, fmt.Errorf("%w: invalid message type %q", ErrInvalidMessage, messageType)
	}
	if strings.TrimSpace(author) == "" {
		return nil, fmt.Errorf("%w: author is required", ErrInvalidMessage)
	}
	if messageType.IsImage() && !IsExternalURL(content) && !ownsFileKey(ticketID, content) {
		return nil, fmt.Errorf("%w: image must be an http(s) URL or a file stored for this ticket", ErrInvalidMessage)
	}

	return &Message{
		id:          id,
		ticketID:    ticketID,
		content:     content,
		messageType: messageType,
		author:      author,
		createdAt:   now,
	}, nil
}

// FileKeyPrefix is the storage prefix of every file uploaded for ticketID.
func FileKeyPrefix(ticketID string) string {
	return "tickets/" + ticketID + "/"
}

// IsExternalURL reports whether content is an http(s) link rather than a
// stored file.
func IsExternalURL(content string) bool {
	lower := strings.ToLower(content)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ownsFileKey reports whether key names a file directly under the
// ticket's own storage prefix.
func ownsFileKey(ticketID, key string) bool {
	name, ok := strings.CutPrefix(key, FileKeyPrefix(ticketID))
	if !ok || name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}

func ReconstructMessage(
	id string,
	ticketID string,
	content string,
	messageType vo.MessageType,
	author string,
	createdAt biztime.Instant,
) (*Message, error) {
	if id == "" {
		return nil, fmt.Errorf("message ID is required")
	}
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !messageType.IsValid() {
		return nil, fmt.Errorf("invalid message type: %s", messageType)
	}

	return &Message{
		id:          id,
		ticketID:    ticketID,
		content:     content,
		messageType: messageType,
		author:      author,
		createdAt:   createdAt,
	}, nil
}

func (m *Message) ID() string { return m.id }

func (m *Message) TicketID() string { return m.ticketID }

func (m *Message) Content() string { return m.content }

func (m *Message) Type() vo.MessageType { return m.messageType }

func (m *Message) Author() string { return m.author }

func (m *Message) CreatedAt() biztime.Instant { return m.createdAt }

// StoredFileKey returns the storage key backing an image message. Only
// keys under the ticket's own prefix count; external URLs and anything
// else yield false, so deleting the ticket never reaches another
// ticket's files.
func (m *Message) StoredFileKey() (string, bool) {
	if !m.messageType.IsImage() || !ownsFileKey(m.ticketID, m.content) {
		return "", false
	}
	return m.content, true
}
