package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/farebox/farebox/internal/domain"
)

// AccountUseCase handles rider registration and sign-in.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// RegisterInput represents input for registering a rider.
type RegisterInput struct {
	Name  string
	Email string
}

// Register creates a rider account with a zero balance. Email collisions
// fail with domain.ErrDuplicateEmail.
func (uc *AccountUseCase) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// SignIn resolves a rider by email.
func (uc *AccountUseCase) SignIn(ctx context.Context, email string) (*domain.Account, error) {
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	return uc.accountRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}
