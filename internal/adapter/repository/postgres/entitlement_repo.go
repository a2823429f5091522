package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
)

// EntitlementRepository implements usecase.EntitlementRepository.
type EntitlementRepository struct {
	pool *pgxpool.Pool
}

// NewEntitlementRepository creates a new EntitlementRepository.
func NewEntitlementRepository(pool *pgxpool.Pool) *EntitlementRepository {
	return &EntitlementRepository{pool: pool}
}

// Create inserts an entitlement inside the settlement transaction. The
// unique (account_id, offering_id) index backs the at-most-one invariant;
// a violation maps to domain.ErrDuplicateEntitlement.
func (r *EntitlementRepository) Create(ctx context.Context, tx usecase.Transaction, entitlement *domain.Entitlement) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO entitlements (id, account_id, offering_id, purchased_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := pgxTx.Exec(ctx, query,
		entitlement.ID,
		entitlement.AccountID,
		entitlement.OfferingID,
		entitlement.PurchasedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEntitlement
	}

	return err
}

// Exists reports whether the account already holds a pass for the offering.
func (r *EntitlementRepository) Exists(ctx context.Context, accountID, offeringID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM entitlements
			WHERE account_id = $1 AND offering_id = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, accountID, offeringID).Scan(&exists)

	return exists, err
}

// ListByAccount returns the account's entitlements oldest first.
func (r *EntitlementRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Entitlement, error) {
	query := `
		SELECT id, account_id, offering_id, purchased_at
		FROM entitlements
		WHERE account_id = $1
		ORDER BY purchased_at, id
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entitlements []*domain.Entitlement
	for rows.Next() {
		var entitlement domain.Entitlement
		if err := rows.Scan(
			&entitlement.ID,
			&entitlement.AccountID,
			&entitlement.OfferingID,
			&entitlement.PurchasedAt,
		); err != nil {
			return nil, err
		}
		entitlements = append(entitlements, &entitlement)
	}

	return entitlements, rows.Err()
}
