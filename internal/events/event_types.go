package events

import (
	"time"

	"github.com/quickdesk/quickdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated  EventType = "ticket_created"
	EventTicketResolved EventType = "ticket_resolved"
	EventTicketDeleted  EventType = "ticket_deleted"
	EventNoteAdded      EventType = "ticket_note_added"
)

// Event represents a domain event emitted by the ticket service.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Subject  string                `json:"subject"`
	Email    string                `json:"email"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketResolvedPayload payload.
type TicketResolvedPayload struct {
	ResolvedAt     time.Time `json:"resolved_at"`
	ResolutionTime string    `json:"resolution_time"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	Subject string              `json:"subject"`
	Status  domain.TicketStatus `json:"status"`
}

// NoteAddedPayload payload.
type NoteAddedPayload struct {
	NoteID         string `json:"note_id"`
	ContentPreview string `json:"content_preview"`
}
