package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/usecase"
	"github.com/farebox/farebox/internal/usecase/mocks"
)

func TestAccountUseCase_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	idGen.EXPECT().Generate().Return("acc-1")

	var created *domain.Account
	accountRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, account *domain.Account) error {
			created = account
			return nil
		})

	uc := usecase.NewAccountUseCase(accountRepo, idGen)

	account, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name:  "  Asha Kamat  ",
		Email: "Asha.Kamat@Example.COM",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.ID != "acc-1" {
		t.Errorf("expected ID acc-1, got %s", account.ID)
	}

	if account.Balance != 0 {
		t.Errorf("new account must start at zero balance, got %d", account.Balance)
	}

	if created.Name != "Asha Kamat" {
		t.Errorf("name not trimmed: %q", created.Name)
	}

	if created.Email != "asha.kamat@example.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
}

func TestAccountUseCase_Register_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repository calls expected for invalid input.
	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(ctrl), mocks.NewMockIDGenerator(ctrl))

	if _, err := uc.Register(context.Background(), usecase.RegisterInput{Name: "", Email: "a@b.com"}); !errors.Is(err, domain.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}

	if _, err := uc.Register(context.Background(), usecase.RegisterInput{Name: "Asha", Email: "nope"}); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestAccountUseCase_Register_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	idGen.EXPECT().Generate().Return("acc-2")
	accountRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrDuplicateEmail)

	uc := usecase.NewAccountUseCase(accountRepo, idGen)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{Name: "Asha", Email: "asha@example.com"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAccountUseCase_SignIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	accountRepo.EXPECT().GetByEmail(gomock.Any(), "asha@example.com").
		Return(&domain.Account{ID: "acc-1", Email: "asha@example.com"}, nil)

	uc := usecase.NewAccountUseCase(accountRepo, mocks.NewMockIDGenerator(ctrl))

	account, err := uc.SignIn(context.Background(), " Asha@Example.com ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.ID != "acc-1" {
		t.Errorf("expected acc-1, got %s", account.ID)
	}
}

func TestAccountUseCase_SignIn_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	accountRepo.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, domain.ErrAccountNotFound)

	uc := usecase.NewAccountUseCase(accountRepo, mocks.NewMockIDGenerator(ctrl))

	_, err := uc.SignIn(context.Background(), "ghost@example.com")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
