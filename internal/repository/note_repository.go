package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickdesk/quickdesk/internal/domain"
)

// NoteRepository encapsulates note persistence. Notes are append-only.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	// ListByTicket returns the ticket's notes newest first.
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Note, error)
}

type noteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository instantiates the postgres-backed repository.
func NewNoteRepository(pool *pgxpool.Pool) NoteRepository {
	return &noteRepository{pool: pool}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	const query = `
        INSERT INTO ticket_notes (id, ticket_id, content, created_at)
        VALUES ($1,$2,$3,$4)`
	_, err := r.pool.Exec(ctx, query, note.ID, note.TicketID, note.Content, note.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *noteRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Note, error) {
	const query = `
        SELECT id, ticket_id, content, created_at
        FROM ticket_notes WHERE ticket_id=$1
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("select notes: %w", err)
	}
	defer rows.Close()

	var result []domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(&note.ID, &note.TicketID, &note.Content, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		result = append(result, note)
	}
	return result, rows.Err()
}
