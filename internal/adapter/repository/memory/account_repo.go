package memory

import (
	"context"
	"time"

	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
)

// Create stores a new account. Fails with domain.ErrDuplicateEmail when the
// contact email is already registered.
func (s *Store) Create(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[account.Email]; taken {
		return domain.ErrDuplicateEmail
	}

	cloned := *account
	s.accounts[account.ID] = &cloned
	s.emails[account.Email] = account.ID

	return nil
}

// GetByID retrieves an account by ID.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	cloned := *account

	return &cloned, nil
}

// GetByEmail retrieves an account by contact email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	cloned := *s.accounts[id]

	return &cloned, nil
}

// CompareAndSwapBalance swaps the balance only if it still equals expected.
// The swap joins the transaction's undo journal so a rollback restores the
// prior balance.
func (s *Store) CompareAndSwapBalance(ctx context.Context, tx usecase.Transaction, id string, expected, next int64, updatedAt time.Time) (bool, error) {
	t := tx.(*Tx)
	t.ensureLocked()

	account, ok := s.accounts[id]
	if !ok {
		return false, domain.ErrAccountNotFound
	}

	if account.Balance != expected {
		return false, nil
	}

	prevBalance, prevUpdated := account.Balance, account.UpdatedAt
	account.Balance = next
	account.UpdatedAt = updatedAt

	t.undo = append(t.undo, func() {
		account.Balance = prevBalance
		account.UpdatedAt = prevUpdated
	})

	return true, nil
}
