package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/farebox/farebox/internal/adapter/repository/memory"
	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
)

// mapCache is an in-process Cache for catalog tests.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]string)}
}

func (c *mapCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *mapCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *mapCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func newCatalogUseCase(cache usecase.Cache) *usecase.CatalogUseCase {
	store := memory.NewStore()
	return usecase.NewCatalogUseCase(memory.NewCatalogRepo(store), &seqIDGen{}, cache)
}

func TestCatalogUseCase_AddOffering(t *testing.T) {
	uc := newCatalogUseCase(nil)
	ctx := context.Background()

	offering, err := uc.AddOffering(ctx, usecase.AddOfferingInput{
		Origin:      "MARGAO",
		Destination: "PANAJI",
		Price:       1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if offering.Kind != domain.OfferingPass {
		t.Errorf("expected default kind pass, got %s", offering.Kind)
	}

	if offering.ValidityDays != domain.DefaultValidityDays {
		t.Errorf("expected default validity %d, got %d", domain.DefaultValidityDays, offering.ValidityDays)
	}
}

func TestCatalogUseCase_AddOffering_Validation(t *testing.T) {
	uc := newCatalogUseCase(nil)
	ctx := context.Background()

	if _, err := uc.AddOffering(ctx, usecase.AddOfferingInput{Origin: "", Destination: "PANAJI", Price: 100}); !errors.Is(err, domain.ErrInvalidLabel) {
		t.Errorf("expected ErrInvalidLabel, got %v", err)
	}

	if _, err := uc.AddOffering(ctx, usecase.AddOfferingInput{Origin: "MARGAO", Destination: "PANAJI", Price: -1}); !errors.Is(err, domain.ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestCatalogUseCase_Seed_Idempotent(t *testing.T) {
	uc := newCatalogUseCase(nil)
	ctx := context.Background()

	seed := []usecase.AddOfferingInput{
		{Origin: "MARGAO", Destination: "PANAJI", Price: 1000},
		{Origin: "PANAJI", Destination: "MAPUSA", Price: 600},
	}

	if err := uc.Seed(ctx, seed); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	// A restart replays the same seed; the catalog must not grow.
	if err := uc.Seed(ctx, seed); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	offerings, err := uc.ListOfferings(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(offerings) != 2 {
		t.Fatalf("expected 2 offerings after repeated seeding, got %d", len(offerings))
	}
}

func TestCatalogUseCase_Seed_SameRouteDifferentPrice(t *testing.T) {
	uc := newCatalogUseCase(nil)
	ctx := context.Background()

	if _, err := uc.AddOffering(ctx, usecase.AddOfferingInput{Origin: "MARGAO", Destination: "PANAJI", Price: 1000}); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Same route at a new price is a distinct offering.
	if _, err := uc.AddOffering(ctx, usecase.AddOfferingInput{Origin: "MARGAO", Destination: "PANAJI", Price: 1200}); err != nil {
		t.Fatalf("add: %v", err)
	}

	offerings, _ := uc.ListOfferings(ctx)
	if len(offerings) != 2 {
		t.Fatalf("expected 2 offerings, got %d", len(offerings))
	}
}

func TestCatalogUseCase_ListOfferings_Cache(t *testing.T) {
	cache := newMapCache()
	uc := newCatalogUseCase(cache)
	ctx := context.Background()

	if _, err := uc.AddOffering(ctx, usecase.AddOfferingInput{Origin: "MARGAO", Destination: "PANAJI", Price: 1000}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := uc.ListOfferings(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}

	if cache.size() != 1 {
		t.Fatalf("expected listing to populate the cache, got %d entries", cache.size())
	}

	// Second listing is served from cache and matches.
	offerings, err := uc.ListOfferings(ctx)
	if err != nil {
		t.Fatalf("cached list: %v", err)
	}
	if len(offerings) != 1 || offerings[0].Origin != "MARGAO" {
		t.Fatalf("cached listing mismatch: %+v", offerings)
	}

	// Adding an offering invalidates the cached listing.
	if _, err := uc.AddOffering(ctx, usecase.AddOfferingInput{Origin: "PANAJI", Destination: "MAPUSA", Price: 600}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if cache.size() != 0 {
		t.Fatalf("expected cache invalidation after add, got %d entries", cache.size())
	}

	offerings, _ = uc.ListOfferings(ctx)
	if len(offerings) != 2 {
		t.Fatalf("expected 2 offerings after refresh, got %d", len(offerings))
	}
}

func TestCatalogUseCase_GetOffering_NotFound(t *testing.T) {
	uc := newCatalogUseCase(nil)

	_, err := uc.GetOffering(context.Background(), "missing")
	if !errors.Is(err, domain.ErrOfferingNotFound) {
		t.Fatalf("expected ErrOfferingNotFound, got %v", err)
	}
}
