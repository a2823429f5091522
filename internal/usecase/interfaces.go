package usecase

import (
	"context"
	"time"

	"github.com/farebox/farebox/internal/domain"
)

// AccountRepository defines data access for rider accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// CompareAndSwapBalance sets the balance to next only if it still equals
	// expected. Returns false when another writer got there first.
	CompareAndSwapBalance(ctx context.Context, tx Transaction, id string, expected, next int64, updatedAt time.Time) (bool, error)
}

// CatalogRepository defines data access for the offering catalog.
type CatalogRepository interface {
	Create(ctx context.Context, offering *domain.Offering) error
	GetByID(ctx context.Context, id string) (*domain.Offering, error)
	List(ctx context.Context) ([]*domain.Offering, error)
	// FindRoute looks up an offering by its (origin, destination, price)
	// triple. Returns domain.ErrOfferingNotFound when absent.
	FindRoute(ctx context.Context, origin, destination string, price int64) (*domain.Offering, error)
}

// EntitlementRepository defines data access for purchased passes.
type EntitlementRepository interface {
	Create(ctx context.Context, tx Transaction, entitlement *domain.Entitlement) error
	Exists(ctx context.Context, accountID, offeringID string) (bool, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Entitlement, error)
}

// TripRepository defines data access for settled trip charges.
type TripRepository interface {
	Create(ctx context.Context, tx Transaction, trip *domain.TripCharge) error
	ListByAccount(ctx context.Context, accountID string) ([]*domain.TripCharge, error)
}

// TicketRepository defines data access for ticket purchases.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.TicketPurchase) error
	ListByAccount(ctx context.Context, accountID string) ([]*domain.TicketPurchase, error)
}

// Transaction represents a storage transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// SettlementRecorder observes settlement outcomes for monitoring.
type SettlementRecorder interface {
	RecordSettlement(kind, outcome string)
	RecordRetry(kind string)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
