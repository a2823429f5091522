package memory

import "context"

// Tx is a journal-style transaction: mutations apply immediately under the
// store's write lock and push an undo entry; Rollback replays the journal
// in reverse. This realizes the compare-and-swap-plus-compensation variant
// of the settlement contract.
type Tx struct {
	store  *Store
	undo   []func()
	locked bool
	done   bool
}

func (t *Tx) ensureLocked() {
	if !t.locked {
		t.store.mu.Lock()
		t.locked = true
	}
}

// Commit discards the undo journal and releases the write lock.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.undo = nil
	if t.locked {
		t.store.mu.Unlock()
	}
	return nil
}

// Rollback undoes every mutation made through this transaction.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
	if t.locked {
		t.store.mu.Unlock()
	}
	return nil
}
