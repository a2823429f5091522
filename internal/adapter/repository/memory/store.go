// Package memory provides an in-memory implementation of the repository
// ports. It backs unit tests and the single-process demo mode; the postgres
// package is the durable equivalent.
package memory

import (
	"context"
	"sync"

	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
)

// Store holds all state behind one RWMutex. Writers inside a transaction
// hold the write lock until Commit or Rollback, so a reader never observes
// a debited balance without its paired history record.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]*domain.Account
	emails       map[string]string
	offerings    []*domain.Offering
	entitlements []*domain.Entitlement
	trips        []*domain.TripCharge
	tickets      []*domain.TicketPurchase
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		emails:   make(map[string]string),
	}
}

// Begin starts a new transaction. The write lock is taken lazily on the
// first mutation.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	return &Tx{store: s}, nil
}
