package usecase

import "time"

const (
	// MaxSettleAttempts bounds optimistic retries on a contended account
	// before the operation fails with domain.ErrContention.
	MaxSettleAttempts = 5

	// SettleBackoffInitial is the first wait between settle attempts.
	SettleBackoffInitial = 20 * time.Millisecond

	// SettleBackoffMax caps the wait between settle attempts.
	SettleBackoffMax = 250 * time.Millisecond

	// CatalogCacheTTL is how long the offering list is cached.
	CatalogCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
