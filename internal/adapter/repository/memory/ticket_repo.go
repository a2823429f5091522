package memory

import (
	"context"

	"github.com/farebox/farebox/internal/domain"
)

// TicketRepo exposes the Store's ticket purchases as a TicketRepository.
type TicketRepo struct {
	store *Store
}

// NewTicketRepo creates a TicketRepo over the given store.
func NewTicketRepo(store *Store) *TicketRepo {
	return &TicketRepo{store: store}
}

// Create appends a ticket purchase. Tickets settle outside any transaction:
// no balance is touched.
func (r *TicketRepo) Create(ctx context.Context, ticket *domain.TicketPurchase) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cloned := *ticket
	r.store.tickets = append(r.store.tickets, &cloned)

	return nil
}

// ListByAccount returns the account's ticket purchases in insertion order.
func (r *TicketRepo) ListByAccount(ctx context.Context, accountID string) ([]*domain.TicketPurchase, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var tickets []*domain.TicketPurchase
	for _, ticket := range r.store.tickets {
		if ticket.AccountID == accountID {
			cloned := *ticket
			tickets = append(tickets, &cloned)
		}
	}

	return tickets, nil
}
