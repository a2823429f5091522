package domain

import "time"

// Account represents a rider's wallet: identity linkage plus a balance in
// minor currency units.
type Account struct {
	ID        string
	Name      string
	Email     string
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDebit checks if the account can be debited by amount without the
// balance going negative.
func (a *Account) ValidateDebit(amount int64) error {
	if a.Balance < amount {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount int64) int64 {
	return a.Balance - amount
}
