package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/farebox/farebox/internal/adapter/http/dto"
	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error)
	SignIn(ctx context.Context, email string) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Register creates a new rider account with a zero balance.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to register account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// SignIn looks up an account by email.
func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req dto.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.SignIn(r.Context(), req.Email)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to sign in", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
