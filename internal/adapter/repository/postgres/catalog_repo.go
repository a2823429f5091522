package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farebox/farebox/internal/domain"
)

// CatalogRepository implements usecase.CatalogRepository.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// Create inserts a new offering.
func (r *CatalogRepository) Create(ctx context.Context, offering *domain.Offering) error {
	query := `
		INSERT INTO offerings (id, origin, destination, price, kind, validity_days, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		offering.ID,
		offering.Origin,
		offering.Destination,
		offering.Price,
		string(offering.Kind),
		offering.ValidityDays,
		offering.CreatedAt,
	)

	return err
}

// GetByID retrieves an offering by ID.
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*domain.Offering, error) {
	query := `
		SELECT id, origin, destination, price, kind, validity_days, created_at
		FROM offerings
		WHERE id = $1
	`

	return scanOffering(r.pool.QueryRow(ctx, query, id))
}

// List returns all offerings in seed order.
func (r *CatalogRepository) List(ctx context.Context) ([]*domain.Offering, error) {
	query := `
		SELECT id, origin, destination, price, kind, validity_days, created_at
		FROM offerings
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offerings []*domain.Offering
	for rows.Next() {
		offering, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, offering)
	}

	return offerings, rows.Err()
}

// FindRoute looks up an offering by its (origin, destination, price) triple.
func (r *CatalogRepository) FindRoute(ctx context.Context, origin, destination string, price int64) (*domain.Offering, error) {
	query := `
		SELECT id, origin, destination, price, kind, validity_days, created_at
		FROM offerings
		WHERE origin = $1 AND destination = $2 AND price = $3
		LIMIT 1
	`

	return scanOffering(r.pool.QueryRow(ctx, query, origin, destination, price))
}

func scanOffering(row pgx.Row) (*domain.Offering, error) {
	var (
		offering domain.Offering
		kind     string
	)
	err := row.Scan(
		&offering.ID,
		&offering.Origin,
		&offering.Destination,
		&offering.Price,
		&kind,
		&offering.ValidityDays,
		&offering.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOfferingNotFound
	}
	if err != nil {
		return nil, err
	}

	offering.Kind = domain.OfferingKind(kind)

	return &offering, nil
}
