package usecase

import (
	"context"
	"time"

	"github.com/metzakaria/vendicore/internal/domain"
)

// ProviderUseCase handles provider account management.
type ProviderUseCase struct {
	providerRepo ProviderRepository
	idGen        IDGenerator
}

// NewProviderUseCase creates a new ProviderUseCase.
func NewProviderUseCase(providerRepo ProviderRepository, idGen IDGenerator) *ProviderUseCase {
	return &ProviderUseCase{
		providerRepo: providerRepo,
		idGen:        idGen,
	}
}

// CreateProviderInput represents input for creating a provider account.
type CreateProviderInput struct {
	Name          string
	Channel       string
	AccountNumber string
}

// CreateProvider registers a provider account.
func (uc *ProviderUseCase) CreateProvider(ctx context.Context, authz domain.AuthContext, input CreateProviderInput) (*domain.ProviderAccount, error) {
	if err := authz.RequireAdmin(); err != nil {
		return nil, err
	}

	if input.Name == "" {
		return nil, domain.ErrInvalidProviderName
	}

	now := time.Now().UTC()

	provider := &domain.ProviderAccount{
		ID:            uc.idGen.Generate(),
		Name:          input.Name,
		Channel:       input.Channel,
		AccountNumber: input.AccountNumber,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.providerRepo.Create(ctx, provider); err != nil {
		return nil, domain.NewOperationError("provider.create", err)
	}

	return provider, nil
}

// GetProvider retrieves a provider account by ID.
func (uc *ProviderUseCase) GetProvider(ctx context.Context, id string) (*domain.ProviderAccount, error) {
	return uc.providerRepo.GetByID(ctx, id)
}

// ListProviders lists provider accounts with pagination.
func (uc *ProviderUseCase) ListProviders(ctx context.Context, limit, offset int) ([]*domain.ProviderAccount, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.providerRepo.List(ctx, limit, offset)
}
