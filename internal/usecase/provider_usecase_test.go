package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/usecase"
	"github.com/metzakaria/vendicore/internal/usecase/mocks"
)

func TestProviderUseCase_CreateProvider(t *testing.T) {
	ctrl := gomock.NewController(t)

	providerRepo := mocks.NewMockProviderRepository(ctrl)
	providerRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.ProviderAccount) error {
			if p.ID == "" {
				t.Error("provider must get a generated ID")
			}
			if !p.Active {
				t.Error("new provider must be active")
			}
			return nil
		})

	uc := usecase.NewProviderUseCase(providerRepo, mocks.NewMockIDGenerator())

	provider, err := uc.CreateProvider(context.Background(), adminAuthz, usecase.CreateProviderInput{
		Name:          "TelcoOne",
		Channel:       "ussd",
		AccountNumber: "0012345678",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.Name != "TelcoOne" {
		t.Errorf("expected name TelcoOne, got %s", provider.Name)
	}
}

func TestProviderUseCase_CreateProvider_EmptyName(t *testing.T) {
	ctrl := gomock.NewController(t)

	providerRepo := mocks.NewMockProviderRepository(ctrl)

	uc := usecase.NewProviderUseCase(providerRepo, mocks.NewMockIDGenerator())

	_, err := uc.CreateProvider(context.Background(), adminAuthz, usecase.CreateProviderInput{
		Channel: "ussd",
	})
	if !errors.Is(err, domain.ErrInvalidProviderName) {
		t.Errorf("expected ErrInvalidProviderName, got %v", err)
	}
}

func TestProviderUseCase_CreateProvider_RequiresAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)

	providerRepo := mocks.NewMockProviderRepository(ctrl)

	uc := usecase.NewProviderUseCase(providerRepo, mocks.NewMockIDGenerator())

	merchantAuthz := domain.AuthContext{UserID: "usr-2", Role: domain.RoleMerchant, Authenticated: true}

	_, err := uc.CreateProvider(context.Background(), merchantAuthz, usecase.CreateProviderInput{
		Name: "TelcoOne",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestProviderUseCase_ListProviders(t *testing.T) {
	ctrl := gomock.NewController(t)

	providerRepo := mocks.NewMockProviderRepository(ctrl)
	providerRepo.EXPECT().
		List(gomock.Any(), 50, 0).
		Return([]*domain.ProviderAccount{{ID: "prv-1"}, {ID: "prv-2"}}, nil)

	uc := usecase.NewProviderUseCase(providerRepo, mocks.NewMockIDGenerator())

	providers, err := uc.ListProviders(context.Background(), 0, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(providers) != 2 {
		t.Errorf("expected 2 providers, got %d", len(providers))
	}
}
