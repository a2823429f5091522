package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
)

// TripRepository implements usecase.TripRepository.
type TripRepository struct {
	pool *pgxpool.Pool
}

// NewTripRepository creates a new TripRepository.
func NewTripRepository(pool *pgxpool.Pool) *TripRepository {
	return &TripRepository{pool: pool}
}

// Create inserts a trip charge inside the settlement transaction.
func (r *TripRepository) Create(ctx context.Context, tx usecase.Transaction, trip *domain.TripCharge) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO trip_charges (id, account_id, start_lat, start_lng, end_lat, end_lng, distance, cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := pgxTx.Exec(ctx, query,
		trip.ID,
		trip.AccountID,
		trip.Start.Lat,
		trip.Start.Lng,
		trip.End.Lat,
		trip.End.Lng,
		decimalToNumeric(trip.Distance),
		trip.Cost,
		trip.CreatedAt,
	)

	return err
}

// ListByAccount returns the account's trip charges oldest first.
func (r *TripRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.TripCharge, error) {
	query := `
		SELECT id, account_id, start_lat, start_lng, end_lat, end_lng, distance, cost, created_at
		FROM trip_charges
		WHERE account_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.TripCharge
	for rows.Next() {
		var (
			trip     domain.TripCharge
			distance pgtype.Numeric
		)
		if err := rows.Scan(
			&trip.ID,
			&trip.AccountID,
			&trip.Start.Lat,
			&trip.Start.Lng,
			&trip.End.Lat,
			&trip.End.Lng,
			&distance,
			&trip.Cost,
			&trip.CreatedAt,
		); err != nil {
			return nil, err
		}
		trip.Distance = numericToDecimal(distance)
		trips = append(trips, &trip)
	}

	return trips, rows.Err()
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
