package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/farebox/farebox/internal/domain"
)

const catalogCacheKey = "catalog:offerings"

// CatalogUseCase handles the read-mostly offering catalog.
type CatalogUseCase struct {
	catalogRepo CatalogRepository
	idGen       IDGenerator
	cache       Cache
}

// NewCatalogUseCase creates a new CatalogUseCase. cache may be nil.
func NewCatalogUseCase(catalogRepo CatalogRepository, idGen IDGenerator, cache Cache) *CatalogUseCase {
	return &CatalogUseCase{
		catalogRepo: catalogRepo,
		idGen:       idGen,
		cache:       cache,
	}
}

// AddOfferingInput represents input for adding a catalog offering.
type AddOfferingInput struct {
	Origin       string
	Destination  string
	Price        int64
	Kind         domain.OfferingKind
	ValidityDays int
}

// AddOffering inserts an offering unless an identical route is already
// present, in which case the existing one is returned. This keeps seeding
// idempotent across restarts.
func (uc *CatalogUseCase) AddOffering(ctx context.Context, input AddOfferingInput) (*domain.Offering, error) {
	if err := domain.ValidateLabel(input.Origin); err != nil {
		return nil, err
	}

	if err := domain.ValidateLabel(input.Destination); err != nil {
		return nil, err
	}

	if err := domain.ValidatePrice(input.Price); err != nil {
		return nil, err
	}

	existing, err := uc.catalogRepo.FindRoute(ctx, input.Origin, input.Destination, input.Price)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, domain.ErrOfferingNotFound) {
		return nil, err
	}

	kind := input.Kind
	if kind == "" {
		kind = domain.OfferingPass
	}

	validity := input.ValidityDays
	if kind == domain.OfferingPass && validity <= 0 {
		validity = domain.DefaultValidityDays
	}

	offering := &domain.Offering{
		ID:           uc.idGen.Generate(),
		Origin:       input.Origin,
		Destination:  input.Destination,
		Price:        input.Price,
		Kind:         kind,
		ValidityDays: validity,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.catalogRepo.Create(ctx, offering); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)

	return offering, nil
}

// Seed loads the fixed offering list at startup. Safe to run repeatedly.
func (uc *CatalogUseCase) Seed(ctx context.Context, offerings []AddOfferingInput) error {
	for _, input := range offerings {
		if _, err := uc.AddOffering(ctx, input); err != nil {
			return err
		}
	}

	return nil
}

// ListOfferings returns the catalog in seed order, serving from cache when
// available. The catalog only changes through AddOffering, which
// invalidates the cache.
func (uc *CatalogUseCase) ListOfferings(ctx context.Context) ([]*domain.Offering, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, catalogCacheKey); err == nil && cached != "" {
			var offerings []*domain.Offering
			if err := json.Unmarshal([]byte(cached), &offerings); err == nil {
				return offerings, nil
			}
		}
	}

	offerings, err := uc.catalogRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(offerings); err == nil {
			uc.cache.Set(ctx, catalogCacheKey, string(encoded), CatalogCacheTTL)
		}
	}

	return offerings, nil
}

// GetOffering retrieves an offering by ID.
func (uc *CatalogUseCase) GetOffering(ctx context.Context, id string) (*domain.Offering, error) {
	return uc.catalogRepo.GetByID(ctx, id)
}

func (uc *CatalogUseCase) invalidate(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.Delete(ctx, catalogCacheKey)
	}
}
