package domain

import "time"

// Note is an append-only annotation on a ticket. Notes have no edit or
// delete operations; they are removed only when their ticket is deleted.
type Note struct {
	ID        string
	TicketID  string
	Content   string
	CreatedAt time.Time
}
