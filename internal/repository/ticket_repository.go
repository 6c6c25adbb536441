package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickdesk/quickdesk/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Implementations return
// defensive copies; callers never hold aliases into stored state.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	// Delete removes the ticket and its notes as one unit. It reports
	// whether a ticket existed.
	Delete(ctx context.Context, id string) (bool, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the postgres-backed repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (id, name, email, subject, description, priority, status, created_at, resolved_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Name,
		ticket.Email,
		ticket.Subject,
		ticket.Description,
		ticket.Priority,
		ticket.Status,
		ticket.CreatedAt,
		ticket.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, name, email, subject, description, priority, status, created_at, resolved_at
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Name,
		&ticket.Email,
		&ticket.Subject,
		&ticket.Description,
		&ticket.Priority,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.ResolvedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select ticket: %w", err)
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT id, name, email, subject, description, priority, status, created_at, resolved_at
        FROM tickets`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select tickets: %w", err)
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Name,
			&ticket.Email,
			&ticket.Subject,
			&ticket.Description,
			&ticket.Priority,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.ResolvedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET name=$1, email=$2, subject=$3, description=$4,
            priority=$5, status=$6, resolved_at=$7
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Name,
		ticket.Email,
		ticket.Subject,
		ticket.Description,
		ticket.Priority,
		ticket.Status,
		ticket.ResolvedAt,
		ticket.ID,
	)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) (bool, error) {
	// Notes are removed by the ON DELETE CASCADE constraint, keeping the
	// ticket-plus-notes removal a single atomic statement.
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete ticket: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
