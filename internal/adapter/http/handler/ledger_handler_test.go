package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/farebox/farebox/internal/adapter/http/dto"
	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
)

type ledgerServiceStub struct {
	purchaseFn func(ctx context.Context, accountID, offeringID string) (int64, error)
	travelFn   func(ctx context.Context, accountID string, start, end domain.Coordinate, distance decimal.Decimal) (int64, error)
	ticketFn   func(ctx context.Context, accountID, origin, destination string) (*domain.TicketPurchase, error)
	viewFn     func(ctx context.Context, accountID string) (*usecase.AccountView, error)
}

func (s *ledgerServiceStub) PurchaseEntitlement(ctx context.Context, accountID, offeringID string) (int64, error) {
	return s.purchaseFn(ctx, accountID, offeringID)
}

func (s *ledgerServiceStub) ChargeTravel(ctx context.Context, accountID string, start, end domain.Coordinate, distance decimal.Decimal) (int64, error) {
	return s.travelFn(ctx, accountID, start, end, distance)
}

func (s *ledgerServiceStub) PurchaseTicket(ctx context.Context, accountID, origin, destination string) (*domain.TicketPurchase, error) {
	return s.ticketFn(ctx, accountID, origin, destination)
}

func (s *ledgerServiceStub) GetAccountView(ctx context.Context, accountID string) (*usecase.AccountView, error) {
	return s.viewFn(ctx, accountID)
}

func newLedgerRouter(stub *ledgerServiceStub) http.Handler {
	h := NewLedgerHandler(stub, "/static/qr_codes")

	r := chi.NewRouter()
	r.Post("/accounts/{id}/entitlements", h.PurchaseEntitlement)
	r.Post("/accounts/{id}/trips", h.ChargeTravel)
	r.Post("/accounts/{id}/tickets", h.PurchaseTicket)
	r.Get("/accounts/{id}/dashboard", h.Dashboard)

	return r
}

func TestLedgerHandler_PurchaseEntitlement_Success(t *testing.T) {
	router := newLedgerRouter(&ledgerServiceStub{
		purchaseFn: func(ctx context.Context, accountID, offeringID string) (int64, error) {
			if accountID != "acc-1" || offeringID != "off-1" {
				t.Errorf("unexpected arguments: %s %s", accountID, offeringID)
			}
			return 0, nil
		},
	})

	body, _ := json.Marshal(dto.PurchaseEntitlementRequest{OfferingID: "off-1"})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/entitlements", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}

	if resp.AccountID != "acc-1" || resp.Balance != 0 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestLedgerHandler_PurchaseEntitlement_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "duplicate pass", err: domain.ErrDuplicateEntitlement, wantStatus: http.StatusConflict},
		{name: "insufficient funds", err: domain.ErrInsufficientFunds, wantStatus: http.StatusPaymentRequired},
		{name: "offering missing", err: domain.ErrOfferingNotFound, wantStatus: http.StatusNotFound},
		{name: "account missing", err: domain.ErrAccountNotFound, wantStatus: http.StatusNotFound},
		{name: "contention exhausted", err: domain.ErrContention, wantStatus: http.StatusConflict},
		{name: "not a pass", err: domain.ErrNotPassOffering, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newLedgerRouter(&ledgerServiceStub{
				purchaseFn: func(ctx context.Context, accountID, offeringID string) (int64, error) {
					return 0, tt.err
				},
			})

			body, _ := json.Marshal(dto.PurchaseEntitlementRequest{OfferingID: "off-1"})
			req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/entitlements", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestLedgerHandler_ChargeTravel_Success(t *testing.T) {
	router := newLedgerRouter(&ledgerServiceStub{
		travelFn: func(ctx context.Context, accountID string, start, end domain.Coordinate, distance decimal.Decimal) (int64, error) {
			if !distance.Equal(decimal.NewFromInt(50)) {
				t.Errorf("unexpected distance: %s", distance)
			}
			return 500, nil
		},
	})

	body, _ := json.Marshal(dto.ChargeTravelRequest{
		Start:    dto.CoordinateRequest{Lat: 15.27, Lng: 73.95},
		End:      dto.CoordinateRequest{Lat: 15.49, Lng: 73.82},
		Distance: decimal.NewFromInt(50),
	})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/trips", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}

	if resp.Balance != 500 {
		t.Errorf("expected balance 500, got %d", resp.Balance)
	}
}

func TestLedgerHandler_ChargeTravel_InsufficientFunds(t *testing.T) {
	router := newLedgerRouter(&ledgerServiceStub{
		travelFn: func(ctx context.Context, accountID string, start, end domain.Coordinate, distance decimal.Decimal) (int64, error) {
			return 0, domain.ErrInsufficientFunds
		},
	})

	body, _ := json.Marshal(dto.ChargeTravelRequest{Distance: decimal.NewFromInt(60)})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/trips", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", rec.Code)
	}
}

func TestLedgerHandler_PurchaseTicket_Success(t *testing.T) {
	router := newLedgerRouter(&ledgerServiceStub{
		ticketFn: func(ctx context.Context, accountID, origin, destination string) (*domain.TicketPurchase, error) {
			return &domain.TicketPurchase{
				ID: "tkt-1", AccountID: accountID,
				Origin: origin, Destination: destination,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.PurchaseTicketRequest{Origin: "MARGAO", Destination: "PANAJI"})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/tickets", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.TicketResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}

	if resp.QRCodeURL != "/static/qr_codes/tkt-1.png" {
		t.Errorf("unexpected QR code URL: %s", resp.QRCodeURL)
	}
}

func TestLedgerHandler_PurchaseTicket_InvalidRoute(t *testing.T) {
	router := newLedgerRouter(&ledgerServiceStub{
		ticketFn: func(ctx context.Context, accountID, origin, destination string) (*domain.TicketPurchase, error) {
			return nil, domain.ErrInvalidRoute
		},
	})

	body, _ := json.Marshal(dto.PurchaseTicketRequest{Origin: "MARGAO", Destination: "MARGAO"})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/tickets", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLedgerHandler_Dashboard(t *testing.T) {
	router := newLedgerRouter(&ledgerServiceStub{
		viewFn: func(ctx context.Context, accountID string) (*usecase.AccountView, error) {
			return &usecase.AccountView{
				Account:      &domain.Account{ID: accountID, Balance: 3700},
				Entitlements: []*domain.Entitlement{{ID: "e1", AccountID: accountID}},
				Trips:        []*domain.TripCharge{{ID: "t1", AccountID: accountID, Cost: 100}},
				Tickets:      []*domain.TicketPurchase{{ID: "tkt-1", AccountID: accountID}},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/dashboard", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.DashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}

	if resp.Account.Balance != 3700 {
		t.Errorf("expected balance 3700, got %d", resp.Account.Balance)
	}

	if len(resp.Entitlements) != 1 || len(resp.Trips) != 1 || len(resp.Tickets) != 1 {
		t.Errorf("unexpected history sizes: %+v", resp)
	}
}
