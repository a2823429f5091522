package memory

import (
	"context"

	"github.com/farebox/farebox/internal/domain"
)

// CatalogRepo exposes the Store's offering data as a CatalogRepository.
type CatalogRepo struct {
	store *Store
}

// NewCatalogRepo creates a CatalogRepo over the given store.
func NewCatalogRepo(store *Store) *CatalogRepo {
	return &CatalogRepo{store: store}
}

// Create appends an offering to the catalog.
func (r *CatalogRepo) Create(ctx context.Context, offering *domain.Offering) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cloned := *offering
	r.store.offerings = append(r.store.offerings, &cloned)

	return nil
}

// GetByID retrieves an offering by ID.
func (r *CatalogRepo) GetByID(ctx context.Context, id string) (*domain.Offering, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, offering := range r.store.offerings {
		if offering.ID == id {
			cloned := *offering
			return &cloned, nil
		}
	}

	return nil, domain.ErrOfferingNotFound
}

// List returns offerings in insertion order.
func (r *CatalogRepo) List(ctx context.Context) ([]*domain.Offering, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	offerings := make([]*domain.Offering, 0, len(r.store.offerings))
	for _, offering := range r.store.offerings {
		cloned := *offering
		offerings = append(offerings, &cloned)
	}

	return offerings, nil
}

// FindRoute looks up an offering by its (origin, destination, price) triple.
func (r *CatalogRepo) FindRoute(ctx context.Context, origin, destination string, price int64) (*domain.Offering, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	probe := domain.Offering{Origin: origin, Destination: destination, Price: price}
	for _, offering := range r.store.offerings {
		if offering.SameRoute(&probe) {
			cloned := *offering
			return &cloned, nil
		}
	}

	return nil, domain.ErrOfferingNotFound
}
