package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/farebox/farebox/internal/domain"
)

func seedAccount(t *testing.T, store *Store, id string, balance int64) {
	t.Helper()

	err := store.Create(context.Background(), &domain.Account{
		ID:      id,
		Email:   id + "@example.com",
		Balance: balance,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.Create(ctx, &domain.Account{ID: "a1", Email: "rider@example.com"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	err := store.Create(ctx, &domain.Account{ID: "a2", Email: "rider@example.com"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByID_ReturnsClone(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "a1", 100)
	ctx := context.Background()

	first, _ := store.GetByID(ctx, "a1")
	first.Balance = 9999

	second, _ := store.GetByID(ctx, "a1")
	if second.Balance != 100 {
		t.Fatalf("mutating a returned account leaked into the store: %d", second.Balance)
	}
}

func TestStore_CompareAndSwapBalance(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "a1", 1000)
	ctx := context.Background()

	t.Run("swap succeeds when balance matches", func(t *testing.T) {
		tx, _ := store.Begin(ctx)
		swapped, err := store.CompareAndSwapBalance(ctx, tx, "a1", 1000, 700, time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !swapped {
			t.Fatal("expected swap to succeed")
		}
		if err := tx.Commit(ctx); err != nil {
			t.Fatalf("commit: %v", err)
		}

		account, _ := store.GetByID(ctx, "a1")
		if account.Balance != 700 {
			t.Fatalf("expected balance 700, got %d", account.Balance)
		}
	})

	t.Run("swap fails on stale expectation", func(t *testing.T) {
		tx, _ := store.Begin(ctx)
		swapped, err := store.CompareAndSwapBalance(ctx, tx, "a1", 1000, 0, time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if swapped {
			t.Fatal("expected swap to fail against a stale balance")
		}
		tx.Rollback(ctx)

		account, _ := store.GetByID(ctx, "a1")
		if account.Balance != 700 {
			t.Fatalf("failed swap moved the balance: %d", account.Balance)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		tx, _ := store.Begin(ctx)
		_, err := store.CompareAndSwapBalance(ctx, tx, "ghost", 0, 0, time.Now())
		tx.Rollback(ctx)
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestTx_RollbackRestoresState(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "a1", 1000)
	ctx := context.Background()

	entitlements := NewEntitlementRepo(store)

	tx, _ := store.Begin(ctx)

	swapped, err := store.CompareAndSwapBalance(ctx, tx, "a1", 1000, 0, time.Now())
	if err != nil || !swapped {
		t.Fatalf("swap failed: swapped=%v err=%v", swapped, err)
	}

	err = entitlements.Create(ctx, tx, &domain.Entitlement{ID: "e1", AccountID: "a1", OfferingID: "off-1"})
	if err != nil {
		t.Fatalf("create entitlement: %v", err)
	}

	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	account, _ := store.GetByID(ctx, "a1")
	if account.Balance != 1000 {
		t.Errorf("rollback did not restore balance: %d", account.Balance)
	}

	held, _ := entitlements.Exists(ctx, "a1", "off-1")
	if held {
		t.Error("rollback did not remove the entitlement")
	}
}

func TestTx_CommitKeepsState(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "a1", 1000)
	ctx := context.Background()

	trips := NewTripRepo(store)

	tx, _ := store.Begin(ctx)
	if _, err := store.CompareAndSwapBalance(ctx, tx, "a1", 1000, 500, time.Now()); err != nil {
		t.Fatalf("swap: %v", err)
	}
	if err := trips.Create(ctx, tx, &domain.TripCharge{ID: "t1", AccountID: "a1", Cost: 500}); err != nil {
		t.Fatalf("create trip: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	account, _ := store.GetByID(ctx, "a1")
	if account.Balance != 500 {
		t.Errorf("expected balance 500, got %d", account.Balance)
	}

	list, _ := trips.ListByAccount(ctx, "a1")
	if len(list) != 1 {
		t.Errorf("expected 1 trip, got %d", len(list))
	}
}

func TestEntitlementRepo_Create_DuplicateUnderTx(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "a1", 0)
	ctx := context.Background()

	entitlements := NewEntitlementRepo(store)

	tx, _ := store.Begin(ctx)
	if err := entitlements.Create(ctx, tx, &domain.Entitlement{ID: "e1", AccountID: "a1", OfferingID: "off-1"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	tx.Commit(ctx)

	tx, _ = store.Begin(ctx)
	err := entitlements.Create(ctx, tx, &domain.Entitlement{ID: "e2", AccountID: "a1", OfferingID: "off-1"})
	tx.Rollback(ctx)

	if !errors.Is(err, domain.ErrDuplicateEntitlement) {
		t.Fatalf("expected ErrDuplicateEntitlement, got %v", err)
	}
}
