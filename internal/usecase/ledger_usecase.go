package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"

	"github.com/farebox/farebox/internal/domain"
)

// Settlement kinds reported to the SettlementRecorder.
const (
	settleKindPass   = "pass"
	settleKindTravel = "travel"
)

// errBalanceConflict marks a lost compare-and-swap race. It never escapes
// the use case; exhausted retries surface as domain.ErrContention.
var errBalanceConflict = errors.New("balance changed concurrently")

// LedgerUseCase is the settlement engine: it validates and applies every
// balance-changing operation. A debit and its history record commit as one
// unit; a rejected operation leaves no trace.
type LedgerUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	catalogRepo     CatalogRepository
	entitlementRepo EntitlementRepository
	tripRepo        TripRepository
	ticketRepo      TicketRepository
	idGen           IDGenerator
	recorder        SettlementRecorder
}

// NewLedgerUseCase creates a new LedgerUseCase. recorder may be nil.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	catalogRepo CatalogRepository,
	entitlementRepo EntitlementRepository,
	tripRepo TripRepository,
	ticketRepo TicketRepository,
	idGen IDGenerator,
	recorder SettlementRecorder,
) *LedgerUseCase {
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &LedgerUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		catalogRepo:     catalogRepo,
		entitlementRepo: entitlementRepo,
		tripRepo:        tripRepo,
		ticketRepo:      ticketRepo,
		idGen:           idGen,
		recorder:        recorder,
	}
}

// PurchaseEntitlement buys the given pass offering for an account. The
// balance debit and the entitlement record are committed atomically.
// Returns the updated balance.
func (uc *LedgerUseCase) PurchaseEntitlement(ctx context.Context, accountID, offeringID string) (int64, error) {
	offering, err := uc.catalogRepo.GetByID(ctx, offeringID)
	if err != nil {
		uc.recorder.RecordSettlement(settleKindPass, settleOutcome(err))
		return 0, err
	}

	if offering.Kind != domain.OfferingPass {
		uc.recorder.RecordSettlement(settleKindPass, settleOutcome(domain.ErrNotPassOffering))
		return 0, domain.ErrNotPassOffering
	}

	var balance int64

	err = uc.retrySettle(ctx, settleKindPass, func() error {
		account, err := uc.accountRepo.GetByID(ctx, accountID)
		if err != nil {
			return err
		}

		exists, err := uc.entitlementRepo.Exists(ctx, account.ID, offering.ID)
		if err != nil {
			return err
		}

		if exists {
			return domain.ErrDuplicateEntitlement
		}

		if err := account.ValidateDebit(offering.Price); err != nil {
			return err
		}

		now := time.Now().UTC()
		next := account.ApplyDebit(offering.Price)

		entitlement := &domain.Entitlement{
			ID:          uc.idGen.Generate(),
			AccountID:   account.ID,
			OfferingID:  offering.ID,
			PurchasedAt: now,
		}

		if err := uc.commitDebit(ctx, account, next, now, func(tx Transaction) error {
			return uc.entitlementRepo.Create(ctx, tx, entitlement)
		}); err != nil {
			return err
		}

		balance = next

		return nil
	})

	uc.recorder.RecordSettlement(settleKindPass, settleOutcome(err))

	if err != nil {
		return 0, err
	}

	return balance, nil
}

// ChargeTravel settles a distance charge against an account. Cost is
// distance times the fixed per-unit rate. An uncovered charge is rejected
// whole: no debit, no trip record. Returns the updated balance.
func (uc *LedgerUseCase) ChargeTravel(ctx context.Context, accountID string, start, end domain.Coordinate, distance decimal.Decimal) (int64, error) {
	cost, err := domain.TravelCost(distance)
	if err != nil {
		uc.recorder.RecordSettlement(settleKindTravel, settleOutcome(err))
		return 0, err
	}

	var balance int64

	err = uc.retrySettle(ctx, settleKindTravel, func() error {
		account, err := uc.accountRepo.GetByID(ctx, accountID)
		if err != nil {
			return err
		}

		if err := account.ValidateDebit(cost); err != nil {
			return err
		}

		now := time.Now().UTC()
		next := account.ApplyDebit(cost)

		trip := &domain.TripCharge{
			ID:        uc.idGen.Generate(),
			AccountID: account.ID,
			Start:     start,
			End:       end,
			Distance:  distance,
			Cost:      cost,
			CreatedAt: now,
		}

		if err := uc.commitDebit(ctx, account, next, now, func(tx Transaction) error {
			return uc.tripRepo.Create(ctx, tx, trip)
		}); err != nil {
			return err
		}

		balance = next

		return nil
	})

	uc.recorder.RecordSettlement(settleKindTravel, settleOutcome(err))

	if err != nil {
		return 0, err
	}

	return balance, nil
}

// PurchaseTicket appends a one-off ticket purchase. Tickets take no balance
// deduction and no duplicate guard; only the route is validated.
func (uc *LedgerUseCase) PurchaseTicket(ctx context.Context, accountID, origin, destination string) (*domain.TicketPurchase, error) {
	if err := domain.ValidateLabel(origin); err != nil {
		return nil, err
	}

	if err := domain.ValidateLabel(destination); err != nil {
		return nil, err
	}

	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	ticket := &domain.TicketPurchase{
		ID:          uc.idGen.Generate(),
		AccountID:   accountID,
		Origin:      origin,
		Destination: destination,
		PurchasedAt: time.Now().UTC(),
	}

	if err := ticket.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}

// AccountView is an account summary plus its full settlement history, each
// list ordered by creation time ascending.
type AccountView struct {
	Account      *domain.Account
	Entitlements []*domain.Entitlement
	Trips        []*domain.TripCharge
	Tickets      []*domain.TicketPurchase
}

// GetAccountView returns the dashboard view for an account.
func (uc *LedgerUseCase) GetAccountView(ctx context.Context, accountID string) (*AccountView, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entitlements, err := uc.entitlementRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	trips, err := uc.tripRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	tickets, err := uc.ticketRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	sort.Slice(entitlements, func(i, j int) bool {
		return entitlements[i].PurchasedAt.Before(entitlements[j].PurchasedAt)
	})
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].CreatedAt.Before(trips[j].CreatedAt)
	})
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].PurchasedAt.Before(tickets[j].PurchasedAt)
	})

	return &AccountView{
		Account:      account,
		Entitlements: entitlements,
		Trips:        trips,
		Tickets:      tickets,
	}, nil
}

// commitDebit swaps the account balance and appends the dependent record in
// one storage transaction. A lost swap reports errBalanceConflict so the
// caller can re-read and retry.
func (uc *LedgerUseCase) commitDebit(ctx context.Context, account *domain.Account, next int64, now time.Time, appendRecord func(tx Transaction) error) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}

	swapped, err := uc.accountRepo.CompareAndSwapBalance(ctx, tx, account.ID, account.Balance, next, now)
	if err != nil {
		tx.Rollback(ctx)
		return err
	}

	if !swapped {
		tx.Rollback(ctx)
		return errBalanceConflict
	}

	if err := appendRecord(tx); err != nil {
		tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

// retrySettle runs op with exponential backoff, retrying only lost balance
// swaps. The caller's deadline aborts between attempts.
func (uc *LedgerUseCase) retrySettle(ctx context.Context, kind string, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = SettleBackoffInitial
	b.MaxInterval = SettleBackoffMax
	b.MaxElapsedTime = 0 // bounded by attempt count, not wall clock

	conflicts := 0

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}

		if !errors.Is(err, errBalanceConflict) {
			return backoff.Permanent(err)
		}

		conflicts++
		uc.recorder.RecordRetry(kind)

		if conflicts >= MaxSettleAttempts {
			return backoff.Permanent(domain.ErrContention)
		}

		return err
	}, backoff.WithContext(b, ctx))
}

// settleOutcome maps a settlement result to a metrics label.
func settleOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrDuplicateEntitlement):
		return "duplicate"
	case errors.Is(err, domain.ErrContention):
		return "contention"
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrOfferingNotFound):
		return "not_found"
	default:
		return "error"
	}
}

type noopRecorder struct{}

func (noopRecorder) RecordSettlement(kind, outcome string) {}
func (noopRecorder) RecordRetry(kind string)               {}
