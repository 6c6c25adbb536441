package dto

import (
	"time"

	"github.com/quickdesk/quickdesk/internal/domain"
)

// CreateTicketRequest is the public submission payload.
type CreateTicketRequest struct {
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Subject     string                `json:"subject"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
}

// UpdateTicketRequest is the partial update payload. ResolvedAt is
// accepted for wire compatibility but never honored; the server stamps
// resolution times itself.
type UpdateTicketRequest struct {
	Status     *domain.TicketStatus `json:"status"`
	ResolvedAt *time.Time           `json:"resolvedAt"`
}

// TicketResponse is the ticket wire representation. TimeOpen and
// ResolutionTime are only attached on the live/past list reads.
type TicketResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Subject        string                `json:"subject"`
	Description    string                `json:"description"`
	Priority       domain.TicketPriority `json:"priority"`
	Status         domain.TicketStatus   `json:"status"`
	CreatedAt      time.Time             `json:"createdAt"`
	ResolvedAt     *time.Time            `json:"resolvedAt"`
	TimeOpen       string                `json:"timeOpen,omitempty"`
	ResolutionTime string                `json:"resolutionTime,omitempty"`
}

// StatsResponse is the aggregate statistics payload.
type StatsResponse struct {
	TotalTickets         int     `json:"totalTickets"`
	LiveTickets          int     `json:"liveTickets"`
	ResolvedTickets      int     `json:"resolvedTickets"`
	AvgResponseTimeMs    float64 `json:"avgResponseTimeMs"`
	CustomerSatisfaction float64 `json:"customerSatisfaction"`
}
