package domain

import (
	"fmt"
	"sort"
	"time"
)

// FormatTimeOpen renders the elapsed time since creation. Units truncate:
// "2d 3h" once a full day has passed, "3h 12m" once a full hour has passed,
// otherwise "12m".
func FormatTimeOpen(createdAt, now time.Time) string {
	elapsed := now.Sub(createdAt)
	if elapsed < 0 {
		elapsed = 0
	}

	days := int(elapsed / (24 * time.Hour))
	hours := int((elapsed % (24 * time.Hour)) / time.Hour)
	minutes := int((elapsed % time.Hour) / time.Minute)

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatResolutionTime renders the time from creation to resolution. There
// is no day unit; past 24 hours the hour count keeps growing ("26h 5m").
func FormatResolutionTime(createdAt, resolvedAt time.Time) string {
	elapsed := resolvedAt.Sub(createdAt)
	if elapsed < 0 {
		elapsed = 0
	}

	hours := int(elapsed / time.Hour)
	minutes := int((elapsed % time.Hour) / time.Minute)

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// LiveTickets returns open tickets sorted newest-created first.
func LiveTickets(tickets []Ticket) []Ticket {
	live := make([]Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Status == TicketStatusOpen {
			live = append(live, t)
		}
	}
	sort.Slice(live, func(i, j int) bool {
		return live[i].CreatedAt.After(live[j].CreatedAt)
	})
	return live
}

// PastTickets returns resolved tickets sorted newest-resolved first. A
// ticket without a resolution timestamp never appears in the past list.
func PastTickets(tickets []Ticket) []Ticket {
	past := make([]Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Status == TicketStatusResolved && t.ResolvedAt != nil {
			past = append(past, t)
		}
	}
	sort.Slice(past, func(i, j int) bool {
		return past[i].ResolvedAt.After(*past[j].ResolvedAt)
	})
	return past
}

// Stats aggregates ticket counts and the mean resolution time.
type Stats struct {
	TotalTickets         int
	LiveTickets          int
	ResolvedTickets      int
	AvgResponseTimeMs    float64
	CustomerSatisfaction float64
}

// satisfactionScore is a placeholder until survey data exists.
const satisfactionScore = 4.8

// ComputeStats derives aggregate statistics from the full ticket set.
// AvgResponseTimeMs is 0 when no ticket has been resolved.
func ComputeStats(tickets []Ticket) Stats {
	stats := Stats{
		TotalTickets:         len(tickets),
		CustomerSatisfaction: satisfactionScore,
	}

	var totalMs float64
	for _, t := range tickets {
		switch t.Status {
		case TicketStatusOpen:
			stats.LiveTickets++
		case TicketStatusResolved:
			stats.ResolvedTickets++
			if t.ResolvedAt != nil {
				totalMs += float64(t.ResolvedAt.Sub(t.CreatedAt).Milliseconds())
			}
		}
	}
	if stats.ResolvedTickets > 0 {
		stats.AvgResponseTimeMs = totalMs / float64(stats.ResolvedTickets)
	}
	return stats
}
