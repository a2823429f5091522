package memory

import (
	"context"

	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
)

// TripRepo exposes the Store's trip charges as a TripRepository.
type TripRepo struct {
	store *Store
}

// NewTripRepo creates a TripRepo over the given store.
func NewTripRepo(store *Store) *TripRepo {
	return &TripRepo{store: store}
}

// Create appends a trip charge inside the settlement transaction.
func (r *TripRepo) Create(ctx context.Context, tx usecase.Transaction, trip *domain.TripCharge) error {
	t := tx.(*Tx)
	t.ensureLocked()

	cloned := *trip
	r.store.trips = append(r.store.trips, &cloned)

	t.undo = append(t.undo, func() {
		r.store.trips = r.store.trips[:len(r.store.trips)-1]
	})

	return nil
}

// ListByAccount returns the account's trip charges in insertion order.
func (r *TripRepo) ListByAccount(ctx context.Context, accountID string) ([]*domain.TripCharge, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var trips []*domain.TripCharge
	for _, trip := range r.store.trips {
		if trip.AccountID == accountID {
			cloned := *trip
			trips = append(trips, &cloned)
		}
	}

	return trips, nil
}
