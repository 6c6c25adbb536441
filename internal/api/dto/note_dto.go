package dto

import (
	"time"

	"github.com/quickdesk/quickdesk/internal/domain"
)

// CreateNoteRequest is the note submission payload.
type CreateNoteRequest struct {
	Content string `json:"content"`
}

// NoteResponse is the note wire representation.
type NoteResponse struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticketId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// TimelineEntryResponse is one row of the merged notes-plus-creation view.
type TimelineEntryResponse struct {
	Type      domain.TimelineEntryKind `json:"type"`
	Content   string                   `json:"content"`
	Author    string                   `json:"author,omitempty"`
	CreatedAt time.Time                `json:"createdAt"`
}
