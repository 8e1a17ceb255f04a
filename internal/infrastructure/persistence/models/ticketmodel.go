package models

import "gorm.io/datatypes"

// TicketModel stores all timestamps as Unix milliseconds (UTC).
type TicketModel struct {
	ID             uint                        `gorm:"primaryKey"`
	SID            string                      `gorm:"column:sid;uniqueIndex;size:32;not null"`
	Caller         string                      `gorm:"size:255;not null;index"`
	Reason         string                      `gorm:"size:500;not null;default:''"`
	Tags           datatypes.JSONSlice[string] `gorm:"not null"`
	Status         string                      `gorm:"size:20;not null;default:open"`
	IsGLPI         bool                        `gorm:"column:is_glpi;not null;default:false"`
	IsBlocking     bool                        `gorm:"not null;default:false"`
	IsArchived     bool                        `gorm:"not null;default:false;index:idx_tickets_archived_created,priority:1"`
	CreatedBy      string                      `gorm:"size:64;not null"`
	CreatedAt      int64                       `gorm:"autoCreateTime:milli;not null;index:idx_tickets_archived_created,priority:2"`
	LastModifiedBy *string                     `gorm:"size:64"`
	LastModifiedAt *int64
	ArchivedBy     *string `gorm:"size:64"`
	ArchivedAt     *int64

	// Note: No foreign key constraints or associations.
	// Messages are removed by the application when a ticket is deleted.
}

func (TicketModel) TableName() string {
	return "tickets"
}

// MessageModel rows are append-only; ID order is insertion order.
type MessageModel struct {
	ID        uint   `gorm:"primaryKey"`
	SID       string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	TicketSID string `gorm:"column:ticket_sid;size:32;not null;index:idx_ticket_messages_ticket_created,priority:1"`
	Content   string `gorm:"type:text;not null"`
	Type      string `gorm:"size:10;not null"`
	Author    string `gorm:"size:64;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index:idx_ticket_messages_ticket_created,priority:2"`
}

func (MessageModel) TableName() string {
	return "ticket_messages"
}
