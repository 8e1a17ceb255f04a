package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/hotline-inc/hotline/internal/domain/ticket"
	vo "github.com/hotline-inc/hotline/internal/domain/ticket/valueobjects"
	"github.com/hotline-inc/hotline/internal/infrastructure/persistence/models"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	// ToModel converts a ticket domain entity to a persistence model. The
	// numeric primary key is left zero; rows are addressed by SID.
	ToModel(t *ticket.Ticket) *models.TicketModel

	// ToDomain converts a ticket persistence model to a domain entity.
	// Messages must be loaded separately by the repository.
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	MessageToModel(m *ticket.Message) *models.MessageModel
	MessageToDomain(model *models.MessageModel) (*ticket.Message, error)
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	tags := t.Tags()
	if tags == nil {
		tags = []string{}
	}

	return &models.TicketModel{
		SID:            t.ID(),
		Caller:         t.Caller(),
		Reason:         t.Reason(),
		Tags:           datatypes.NewJSONSlice(tags),
		Status:         t.Status().String(),
		IsGLPI:         t.IsGLPI(),
		IsBlocking:     t.IsBlocking(),
		IsArchived:     t.IsArchived(),
		CreatedBy:      t.CreatedBy(),
		CreatedAt:      t.CreatedAt().UnixMilli(),
		LastModifiedBy: optionalString(t.LastModifiedBy()),
		LastModifiedAt: optionalMillis(t.LastModifiedAt()),
		ArchivedBy:     optionalString(t.ArchivedBy()),
		ArchivedAt:     optionalMillis(t.ArchivedAt()),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %s: %w", model.SID, err)
	}

	return ticket.ReconstructTicket(
		model.SID,
		ticket.Details{
			Caller:     model.Caller,
			Reason:     model.Reason,
			Tags:       []string(model.Tags),
			Status:     status,
			IsGLPI:     model.IsGLPI,
			IsBlocking: model.IsBlocking,
		},
		model.IsArchived,
		model.CreatedBy,
		biztime.InstantFromUnixMilli(model.CreatedAt),
		derefString(model.LastModifiedBy),
		instantFromOptionalMillis(model.LastModifiedAt),
		derefString(model.ArchivedBy),
		instantFromOptionalMillis(model.ArchivedAt),
	)
}

func (m *TicketMapperImpl) MessageToModel(msg *ticket.Message) *models.MessageModel {
	return &models.MessageModel{
		SID:       msg.ID(),
		TicketSID: msg.TicketID(),
		Content:   msg.Content(),
		Type:      msg.Type().String(),
		Author:    msg.Author(),
		CreatedAt: msg.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) MessageToDomain(model *models.MessageModel) (*ticket.Message, error) {
	return ticket.ReconstructMessage(
		model.SID,
		model.TicketSID,
		model.Content,
		vo.MessageType(model.Type),
		model.Author,
		biztime.InstantFromUnixMilli(model.CreatedAt),
	)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalMillis(i biztime.Instant) *int64 {
	if i.IsZero() {
		return nil
	}
	ms := i.UnixMilli()
	return &ms
}

func instantFromOptionalMillis(ms *int64) biztime.Instant {
	if ms == nil {
		return biztime.Instant{}
	}
	return biztime.InstantFromUnixMilli(*ms)
}
