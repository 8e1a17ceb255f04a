package ticket

import (
	"github.com/hotline-inc/hotline/internal/application/ticket/usecases"
)

type CreateTicketRequest struct {
	Caller     string   `json:"caller" binding:"notblank,max=255"`
	Reason     string   `json:"reason" binding:"max=500"`
	Tags       []string `json:"tags" binding:"omitempty,max=50,dive,max=100"`
	IsGLPI     bool     `json:"is_glpi"`
	IsBlocking bool     `json:"is_blocking"`
}

func (r *CreateTicketRequest) ToCommand(actor string) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Caller:     r.Caller,
		Reason:     r.Reason,
		Tags:       r.Tags,
		IsGLPI:     r.IsGLPI,
		IsBlocking: r.IsBlocking,
		Actor:      actor,
	}
}

type EditTicketRequest struct {
	Caller     string   `json:"caller" binding:"notblank,max=255"`
	Reason     string   `json:"reason" binding:"max=500"`
	Tags       []string `json:"tags" binding:"omitempty,max=50,dive,max=100"`
	Status     string   `json:"status" binding:"omitempty,oneof=open closed"`
	IsGLPI     bool     `json:"is_glpi"`
	IsBlocking bool     `json:"is_blocking"`
}

func (r *EditTicketRequest) ToCommand(ticketID, actor string) usecases.EditTicketCommand {
	return usecases.EditTicketCommand{
		TicketID:   ticketID,
		Caller:     r.Caller,
		Reason:     r.Reason,
		Tags:       r.Tags,
		Status:     r.Status,
		IsGLPI:     r.IsGLPI,
		IsBlocking: r.IsBlocking,
		Actor:      actor,
	}
}

type AppendMessageRequest struct {
	Content string `json:"content" binding:"notblank,max=10000"`
	Type    string `json:"type" binding:"omitempty,oneof=text image"`
}

type ReorderMessagesRequest struct {
	MessageIDs []string `json:"message_ids" binding:"required"`
}

// ListArchivedRequest carries the archived listing filters.
type ListArchivedRequest struct {
	Search    string `form:"search" binding:"max=255"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

func (r *ListArchivedRequest) ToQuery() usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		Archived:     true,
		Search:       r.Search,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		WithMessages: true,
	}
}
