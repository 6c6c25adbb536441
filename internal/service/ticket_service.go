package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/events"
	"github.com/quickdesk/quickdesk/internal/repository"
	"github.com/quickdesk/quickdesk/pkg/util"
)

// StatsCache is the read-through cache the stats endpoint sits behind.
// Implementations must treat cache failure as a miss.
type StatsCache interface {
	Get(ctx context.Context) (domain.Stats, bool)
	Set(ctx context.Context, stats domain.Stats)
	Invalidate(ctx context.Context)
}

// TicketService coordinates the ticket lifecycle: it validates input,
// stamps server-side timestamps on transitions, and composes the derived
// read views. The server clock is the only authority on createdAt and
// resolvedAt; client-supplied values are discarded.
type TicketService struct {
	tickets    repository.TicketRepository
	notes      repository.NoteRepository
	dispatcher events.Dispatcher
	stats      StatsCache
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	NoteRepo   repository.NoteRepository
	Dispatcher events.Dispatcher
	StatsCache StatsCache
}

// TicketCreateInput describes the ticket submission payload.
type TicketCreateInput struct {
	Name        string
	Email       string
	Subject     string
	Description string
	Priority    domain.TicketPriority
}

// TicketUpdateInput describes a partial update. Only status is honored;
// resolution timestamps are stamped server-side.
type TicketUpdateInput struct {
	Status *domain.TicketStatus
}

// TicketView is a ticket with its derived presentation fields attached.
type TicketView struct {
	domain.Ticket
	TimeOpen       string
	ResolutionTime string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		notes:      deps.NoteRepo,
		dispatcher: deps.Dispatcher,
		stats:      deps.StatsCache,
		now:        time.Now,
	}
}

// CreateTicket validates the submission and stores a new open ticket.
// Priority defaults to medium when omitted.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	var fields []util.FieldError
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	subject := strings.TrimSpace(input.Subject)
	description := strings.TrimSpace(input.Description)

	if name == "" {
		fields = append(fields, util.FieldError{Field: "name", Message: "name is required"})
	}
	if email == "" {
		fields = append(fields, util.FieldError{Field: "email", Message: "email is required"})
	}
	if subject == "" {
		fields = append(fields, util.FieldError{Field: "subject", Message: "subject is required"})
	}
	if description == "" {
		fields = append(fields, util.FieldError{Field: "description", Message: "description is required"})
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !domain.ValidPriority(priority) {
		fields = append(fields, util.FieldError{Field: "priority", Message: "priority must be one of low, medium, high, urgent"})
	}

	if len(fields) > 0 {
		return nil, util.NewValidationError("Invalid ticket data", fields)
	}

	ticket := &domain.Ticket{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       email,
		Subject:     subject,
		Description: description,
		Priority:    priority,
		Status:      domain.TicketStatusOpen,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	s.invalidateStats(ctx)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Subject:  ticket.Subject,
			Email:    ticket.Email,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// GetTicket fetches one ticket.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewNotFound("ticket")
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return ticket, nil
}

// ListTickets returns every ticket without ordering guarantees.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// ListLiveTickets returns open tickets newest-created first with the
// timeOpen field attached.
func (s *TicketService) ListLiveTickets(ctx context.Context) ([]TicketView, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	now := s.now()
	live := domain.LiveTickets(tickets)
	views := make([]TicketView, 0, len(live))
	for _, t := range live {
		views = append(views, TicketView{
			Ticket:   t,
			TimeOpen: domain.FormatTimeOpen(t.CreatedAt, now),
		})
	}
	return views, nil
}

// ListPastTickets returns resolved tickets newest-resolved first with the
// resolutionTime field attached.
func (s *TicketService) ListPastTickets(ctx context.Context) ([]TicketView, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	past := domain.PastTickets(tickets)
	views := make([]TicketView, 0, len(past))
	for _, t := range past {
		views = append(views, TicketView{
			Ticket:         t,
			ResolutionTime: domain.FormatResolutionTime(t.CreatedAt, *t.ResolvedAt),
		})
	}
	return views, nil
}

// Stats returns aggregate ticket statistics, served from the cache when a
// fresh entry exists.
func (s *TicketService) Stats(ctx context.Context) (domain.Stats, error) {
	if s.stats != nil {
		if cached, ok := s.stats.Get(ctx); ok {
			return cached, nil
		}
	}
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("list tickets: %w", err)
	}
	stats := domain.ComputeStats(tickets)
	if s.stats != nil {
		s.stats.Set(ctx, stats)
	}
	return stats, nil
}

// ResolveTicket transitions an open ticket to resolved and stamps the
// resolution time. Resolving an already-resolved ticket is a no-op that
// returns the stored record unchanged: the first resolution wins and the
// original timestamp is never re-stamped.
func (s *TicketService) ResolveTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusResolved {
		return ticket, nil
	}

	resolvedAt := s.now().UTC()
	ticket.Status = domain.TicketStatusResolved
	ticket.ResolvedAt = &resolvedAt

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewNotFound("ticket")
		}
		return nil, fmt.Errorf("update ticket: %w", err)
	}
	s.invalidateStats(ctx)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketResolved,
		TicketID: ticket.ID,
		Payload: events.TicketResolvedPayload{
			ResolvedAt:     resolvedAt,
			ResolutionTime: domain.FormatResolutionTime(ticket.CreatedAt, resolvedAt),
		},
	})
	return ticket, nil
}

// UpdateTicket applies a partial update. Setting status to resolved routes
// through the resolve transition; asking a resolved ticket to reopen is
// rejected because no resolved-to-open transition exists.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	if input.Status == nil {
		return s.GetTicket(ctx, id)
	}

	switch *input.Status {
	case domain.TicketStatusResolved:
		return s.ResolveTicket(ctx, id)
	case domain.TicketStatusOpen:
		ticket, err := s.GetTicket(ctx, id)
		if err != nil {
			return nil, err
		}
		if ticket.Status == domain.TicketStatusResolved {
			return nil, util.NewValidationError("Invalid update data", []util.FieldError{
				{Field: "status", Message: "a resolved ticket cannot be reopened"},
			})
		}
		return ticket, nil
	default:
		return nil, util.NewValidationError("Invalid update data", []util.FieldError{
			{Field: "status", Message: "status must be open or resolved"},
		})
	}
}

// DeleteTicket removes a ticket and its notes. Deletion is terminal and
// available from either lifecycle state.
func (s *TicketService) DeleteTicket(ctx context.Context, id string) error {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return err
	}
	deleted, err := s.tickets.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	if !deleted {
		return util.NewNotFound("ticket")
	}
	s.invalidateStats(ctx)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: id,
		Payload: events.TicketDeletedPayload{
			Subject: ticket.Subject,
			Status:  ticket.Status,
		},
	})
	return nil
}

// AddNote appends a note to an existing ticket. The ticket reference is
// enforced: a note against an unknown ticket id is a not-found failure.
func (s *TicketService) AddNote(ctx context.Context, ticketID, content string) (*domain.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, util.NewValidationError("Invalid note data", []util.FieldError{
			{Field: "content", Message: "content is required"},
		})
	}
	if _, err := s.GetTicket(ctx, ticketID); err != nil {
		return nil, err
	}

	note := &domain.Note{
		ID:        uuid.New().String(),
		TicketID:  ticketID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventNoteAdded,
		TicketID: ticketID,
		Payload: events.NoteAddedPayload{
			NoteID:         note.ID,
			ContentPreview: preview(note.Content),
		},
	})
	return note, nil
}

// ListNotes returns a ticket's notes newest first.
func (s *TicketService) ListNotes(ctx context.Context, ticketID string) ([]domain.Note, error) {
	notes, err := s.notes.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Timeline returns the merged per-ticket view: notes newest first followed
// by the synthetic creation entry.
func (s *TicketService) Timeline(ctx context.Context, ticketID string) ([]domain.TimelineEntry, error) {
	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	notes, err := s.ListNotes(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return domain.BuildTimeline(*ticket, notes), nil
}

func (s *TicketService) invalidateStats(ctx context.Context) {
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.New().String()
	event.Timestamp = s.now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}

func preview(content string) string {
	const max = 80
	if len(content) <= max {
		return content
	}
	return content[:max]
}
