package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/quickdesk/quickdesk/internal/domain"
)

// MemoryTicketRepository is the in-memory ticket store. It backs the
// service when no database is configured and doubles as the test store.
// All reads return copies, so callers can never mutate stored state.
type MemoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]domain.Ticket
	notes   *MemoryNoteRepository
}

// NewMemoryTicketRepository creates an empty in-memory ticket store. The
// note store is attached so a ticket delete can sweep its notes in the
// same critical section.
func NewMemoryTicketRepository(notes *MemoryNoteRepository) *MemoryTicketRepository {
	return &MemoryTicketRepository{
		tickets: make(map[string]domain.Ticket),
		notes:   notes,
	}
}

func (r *MemoryTicketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[ticket.ID] = copyTicket(*ticket)
	return nil
}

func (r *MemoryTicketRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyTicket(ticket)
	return &out, nil
}

func (r *MemoryTicketRepository) List(_ context.Context) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		result = append(result, copyTicket(ticket))
	}
	return result, nil
}

func (r *MemoryTicketRepository) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[ticket.ID]; !ok {
		return ErrNotFound
	}
	r.tickets[ticket.ID] = copyTicket(*ticket)
	return nil
}

func (r *MemoryTicketRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return false, nil
	}
	delete(r.tickets, id)
	if r.notes != nil {
		r.notes.deleteByTicket(id)
	}
	return true, nil
}

func copyTicket(t domain.Ticket) domain.Ticket {
	if t.ResolvedAt != nil {
		resolvedAt := *t.ResolvedAt
		t.ResolvedAt = &resolvedAt
	}
	return t
}

// MemoryNoteRepository is the in-memory note store.
type MemoryNoteRepository struct {
	mu    sync.RWMutex
	notes map[string][]domain.Note
}

// NewMemoryNoteRepository creates an empty in-memory note store.
func NewMemoryNoteRepository() *MemoryNoteRepository {
	return &MemoryNoteRepository{notes: make(map[string][]domain.Note)}
}

func (r *MemoryNoteRepository) Create(_ context.Context, note *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes[note.TicketID] = append(r.notes[note.TicketID], *note)
	return nil
}

func (r *MemoryNoteRepository) ListByTicket(_ context.Context, ticketID string) ([]domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.notes[ticketID]
	result := make([]domain.Note, len(stored))
	copy(result, stored)
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryNoteRepository) deleteByTicket(ticketID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notes, ticketID)
}

// MemoryUserRepository is the in-memory user store.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]domain.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			out := user
			return &out, nil
		}
	}
	return nil, ErrNotFound
}
