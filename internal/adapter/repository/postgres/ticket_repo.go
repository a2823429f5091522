package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farebox/farebox/internal/domain"
)

// TicketRepository implements usecase.TicketRepository.
type TicketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository creates a new TicketRepository.
func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

// Create appends a ticket purchase. No transaction: tickets never touch the
// balance.
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.TicketPurchase) error {
	query := `
		INSERT INTO ticket_purchases (id, account_id, origin, destination, purchased_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.AccountID,
		ticket.Origin,
		ticket.Destination,
		ticket.PurchasedAt,
	)

	return err
}

// ListByAccount returns the account's ticket purchases oldest first.
func (r *TicketRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.TicketPurchase, error) {
	query := `
		SELECT id, account_id, origin, destination, purchased_at
		FROM ticket_purchases
		WHERE account_id = $1
		ORDER BY purchased_at, id
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*domain.TicketPurchase
	for rows.Next() {
		var ticket domain.TicketPurchase
		if err := rows.Scan(
			&ticket.ID,
			&ticket.AccountID,
			&ticket.Origin,
			&ticket.Destination,
			&ticket.PurchasedAt,
		); err != nil {
			return nil, err
		}
		tickets = append(tickets, &ticket)
	}

	return tickets, rows.Err()
}
