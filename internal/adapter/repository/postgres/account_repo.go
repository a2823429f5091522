package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account. Email collisions map to
// domain.ErrDuplicateEmail.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, name, email, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.Balance,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		SELECT id, name, email, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	return r.scanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail retrieves an account by contact email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
		SELECT id, name, email, balance, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`

	return r.scanAccount(r.pool.QueryRow(ctx, query, email))
}

// CompareAndSwapBalance updates the balance only if it still holds the
// expected value. The rows-affected count is the swap verdict.
func (r *AccountRepository) CompareAndSwapBalance(ctx context.Context, tx usecase.Transaction, id string, expected, next int64, updatedAt time.Time) (bool, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE accounts
		SET balance = $3, updated_at = $4
		WHERE id = $1 AND balance = $2
	`

	ct, err := pgxTx.Exec(ctx, query, id, expected, next, updatedAt)
	if err != nil {
		return false, err
	}

	return ct.RowsAffected() == 1, nil
}

func (r *AccountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	return &account, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
