package memory

import (
	"context"

	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
)

// EntitlementRepo exposes the Store's pass records as an
// EntitlementRepository.
type EntitlementRepo struct {
	store *Store
}

// NewEntitlementRepo creates an EntitlementRepo over the given store.
func NewEntitlementRepo(store *Store) *EntitlementRepo {
	return &EntitlementRepo{store: store}
}

// Create appends an entitlement inside the settlement transaction. The
// (account, offering) uniqueness invariant is re-checked under the write
// lock so concurrent zero-price purchases cannot slip past the use case's
// pre-check.
func (r *EntitlementRepo) Create(ctx context.Context, tx usecase.Transaction, entitlement *domain.Entitlement) error {
	t := tx.(*Tx)
	t.ensureLocked()

	for _, existing := range r.store.entitlements {
		if existing.AccountID == entitlement.AccountID && existing.OfferingID == entitlement.OfferingID {
			return domain.ErrDuplicateEntitlement
		}
	}

	cloned := *entitlement
	r.store.entitlements = append(r.store.entitlements, &cloned)

	t.undo = append(t.undo, func() {
		r.store.entitlements = r.store.entitlements[:len(r.store.entitlements)-1]
	})

	return nil
}

// Exists reports whether the account already holds a pass for the offering.
func (r *EntitlementRepo) Exists(ctx context.Context, accountID, offeringID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, entitlement := range r.store.entitlements {
		if entitlement.AccountID == accountID && entitlement.OfferingID == offeringID {
			return true, nil
		}
	}

	return false, nil
}

// ListByAccount returns the account's entitlements in insertion order.
func (r *EntitlementRepo) ListByAccount(ctx context.Context, accountID string) ([]*domain.Entitlement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var entitlements []*domain.Entitlement
	for _, entitlement := range r.store.entitlements {
		if entitlement.AccountID == accountID {
			cloned := *entitlement
			entitlements = append(entitlements, &cloned)
		}
	}

	return entitlements, nil
}
