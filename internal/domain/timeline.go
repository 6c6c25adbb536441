package domain

import "time"

// TimelineEntryKind distinguishes timeline entry sources.
type TimelineEntryKind string

const (
	TimelineEntryNote    TimelineEntryKind = "note"
	TimelineEntryCreated TimelineEntryKind = "created"
)

// TimelineEntry is one row in the merged per-ticket timeline view.
type TimelineEntry struct {
	Kind      TimelineEntryKind
	Content   string
	Author    string
	CreatedAt time.Time
}

// BuildTimeline merges a ticket's notes (already newest-first) with the
// synthetic creation event, which is always present and always last.
func BuildTimeline(ticket Ticket, notes []Note) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(notes)+1)
	for _, n := range notes {
		entries = append(entries, TimelineEntry{
			Kind:      TimelineEntryNote,
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
		})
	}
	entries = append(entries, TimelineEntry{
		Kind:      TimelineEntryCreated,
		Content:   "Ticket created",
		Author:    ticket.Name,
		CreatedAt: ticket.CreatedAt,
	})
	return entries
}
