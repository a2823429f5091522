package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/farebox/farebox/internal/adapter/http/dto"
	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	PurchaseEntitlement(ctx context.Context, accountID, offeringID string) (int64, error)
	ChargeTravel(ctx context.Context, accountID string, start, end domain.Coordinate, distance decimal.Decimal) (int64, error)
	PurchaseTicket(ctx context.Context, accountID, origin, destination string) (*domain.TicketPurchase, error)
	GetAccountView(ctx context.Context, accountID string) (*usecase.AccountView, error)
}

// LedgerHandler handles settlement HTTP requests.
type LedgerHandler struct {
	ledgerUC  LedgerService
	qrBaseURL string
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, qrBaseURL string) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, qrBaseURL: qrBaseURL}
}

// PurchaseEntitlement buys a pass offering for the account.
func (h *LedgerHandler) PurchaseEntitlement(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.PurchaseEntitlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	balance, err := h.ledgerUC.PurchaseEntitlement(r.Context(), accountID, req.OfferingID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to purchase pass", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BalanceResponse{
		AccountID: accountID,
		Balance:   balance,
	})
}

// ChargeTravel settles a distance charge against the account.
func (h *LedgerHandler) ChargeTravel(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.ChargeTravelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	balance, err := h.ledgerUC.ChargeTravel(r.Context(), accountID, req.Start.ToDomain(), req.End.ToDomain(), req.Distance)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to charge travel", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BalanceResponse{
		AccountID: accountID,
		Balance:   balance,
	})
}

// PurchaseTicket issues a one-off ticket for the account.
func (h *LedgerHandler) PurchaseTicket(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.PurchaseTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ticket, err := h.ledgerUC.PurchaseTicket(r.Context(), accountID, req.Origin, req.Destination)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to purchase ticket", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TicketFromDomain(ticket, h.qrBaseURL))
}

// Dashboard returns the account summary with its full settlement history.
func (h *LedgerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	view, err := h.ledgerUC.GetAccountView(r.Context(), accountID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to load dashboard", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DashboardFromView(view, h.qrBaseURL))
}
