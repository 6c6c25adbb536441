package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusResolved TicketStatus = "resolved"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// ValidPriority reports whether p is one of the enumerated priorities.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests.
//
// ResolvedAt is non-nil exactly when Status is resolved; it is stamped by
// the server on the open to resolved transition and never afterwards.
type Ticket struct {
	ID          string
	Name        string
	Email       string
	Subject     string
	Description string
	Priority    TicketPriority
	Status      TicketStatus
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}
