package dto

import (
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	"github.com/hotline-inc/hotline/internal/shared/logger"
	"github.com/hotline-inc/hotline/internal/shared/services/markdown"
)

// ImageRoute is the URL prefix images stored by the service are served from.
const ImageRoute = "/api/images/"

type TicketDTO struct {
	ID                    string           `json:"id"`
	Caller                string           `json:"caller"`
	Reason                string           `json:"reason"`
	Tags                  []string         `json:"tags"`
	Status                string           `json:"status"`
	IsGLPI                bool             `json:"is_glpi"`
	IsBlocking            bool             `json:"is_blocking"`
	IsArchived            bool             `json:"is_archived"`
	CreatedBy             string           `json:"created_by"`
	CreatedAt             biztime.Instant  `json:"created_at"`
	CreatedAtDisplay      *biztime.Display `json:"created_at_display,omitempty"`
	LastModifiedBy        string           `json:"last_modified_by,omitempty"`
	LastModifiedAt        biztime.Instant  `json:"last_modified_at"`
	LastModifiedAtDisplay *biztime.Display `json:"last_modified_at_display,omitempty"`
	ArchivedBy            string           `json:"archived_by,omitempty"`
	ArchivedAt            biztime.Instant  `json:"archived_at"`
	ArchivedAtDisplay     *biztime.Display `json:"archived_at_display,omitempty"`
	Messages              []MessageDTO     `json:"messages"`
}

type MessageDTO struct {
	ID               string           `json:"id"`
	TicketID         string           `json:"ticket_id"`
	Type             string           `json:"type"`
	Content          string           `json:"content"`
	HTML             string           `json:"html,omitempty"`
	ImageURL         string           `json:"image_url,omitempty"`
	Author           string           `json:"author"`
	CreatedAt        biztime.Instant  `json:"created_at"`
	CreatedAtDisplay *biztime.Display `json:"created_at_display,omitempty"`
}

// Presenter turns domain objects into DTOs, rendering every timestamp
// through the normalizer.
type Presenter struct {
	normalizer *biztime.Normalizer
	renderer   markdown.Renderer
	logger     logger.Interface
}

func NewPresenter(normalizer *biztime.Normalizer, renderer markdown.Renderer, log logger.Interface) *Presenter {
	return &Presenter{normalizer: normalizer, renderer: renderer, logger: log}
}

// Normalizer returns the normalizer used for display strings.
func (p *Presenter) Normalizer() *biztime.Normalizer {
	return p.normalizer
}

func (p *Presenter) Ticket(t *ticket.Ticket, style biztime.Style) *TicketDTO {
	if t == nil {
		return nil
	}

	messages := t.Messages()
	messageDTOs := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		messageDTOs = append(messageDTOs, *p.Message(m, style))
	}

	return &TicketDTO{
		ID:                    t.ID(),
		Caller:                t.Caller(),
		Reason:                t.Reason(),
		Tags:                  t.Tags(),
		Status:                t.Status().String(),
		IsGLPI:                t.IsGLPI(),
		IsBlocking:            t.IsBlocking(),
		IsArchived:            t.IsArchived(),
		CreatedBy:             t.CreatedBy(),
		CreatedAt:             t.CreatedAt(),
		CreatedAtDisplay:      p.normalizer.Display(t.CreatedAt(), style),
		LastModifiedBy:        t.LastModifiedBy(),
		LastModifiedAt:        t.LastModifiedAt(),
		LastModifiedAtDisplay: p.normalizer.Display(t.LastModifiedAt(), style),
		ArchivedBy:            t.ArchivedBy(),
		ArchivedAt:            t.ArchivedAt(),
		ArchivedAtDisplay:     p.normalizer.Display(t.ArchivedAt(), style),
		Messages:              messageDTOs,
	}
}

func (p *Presenter) Tickets(tickets []*ticket.Ticket, style biztime.Style) []*TicketDTO {
	out := make([]*TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, p.Ticket(t, style))
	}
	return out
}

func (p *Presenter) Message(m *ticket.Message, style biztime.Style) *MessageDTO {
	out := &MessageDTO{
		ID:               m.ID(),
		TicketID:         m.TicketID(),
		Type:             m.Type().String(),
		Content:          m.Content(),
		Author:           m.Author(),
		CreatedAt:        m.CreatedAt(),
		CreatedAtDisplay: p.normalizer.Display(m.CreatedAt(), style),
	}

	if m.Type().IsImage() {
		if key, ok := m.StoredFileKey(); ok {
			out.ImageURL = ImageRoute + key
		} else if ticket.IsExternalURL(m.Content()) {
			out.ImageURL = m.Content()
		}
		return out
	}

	html, err := p.renderer.Render(m.Content())
	if err != nil {
		// Clients fall back to the raw content.
		p.logger.Warnw("failed to render message", "message_id", m.ID(), "error", err)
		return out
	}
	out.HTML = html
	return out
}

func (p *Presenter) Messages(messages []*ticket.Message, style biztime.Style) []*MessageDTO {
	out := make([]*MessageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, p.Message(m, style))
	}
	return out
}
