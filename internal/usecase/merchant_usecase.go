package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/infrastructure/metrics"
)

// MerchantUseCase handles merchant catalog operations.
type MerchantUseCase struct {
	merchantRepo MerchantRepository
	cache        Cache
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewMerchantUseCase creates a new MerchantUseCase. cache may be nil.
func NewMerchantUseCase(merchantRepo MerchantRepository, cache Cache, idGen IDGenerator) *MerchantUseCase {
	return &MerchantUseCase{
		merchantRepo: merchantRepo,
		cache:        cache,
		idGen:        idGen,
	}
}

// WithMetrics attaches business metrics. Safe to skip; all recording is
// nil-guarded.
func (uc *MerchantUseCase) WithMetrics(m *metrics.Metrics) *MerchantUseCase {
	uc.metrics = m
	return uc
}

// CreateMerchantInput represents input for creating a merchant.
type CreateMerchantInput struct {
	Name  string
	Email string
	Phone string
}

// CreateMerchant creates a new merchant with a zero balance.
func (uc *MerchantUseCase) CreateMerchant(ctx context.Context, authz domain.AuthContext, input CreateMerchantInput) (*domain.Merchant, error) {
	if err := authz.RequireAdmin(); err != nil {
		return nil, err
	}

	if err := domain.ValidateMerchantName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	merchant := &domain.Merchant{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Balance:   decimal.Zero,
		Status:    domain.MerchantStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, domain.NewOperationError("merchant.create", err)
	}

	if uc.metrics != nil {
		uc.metrics.MerchantsCreated.Inc()
	}

	return merchant, nil
}

// GetMerchant retrieves a merchant by ID, via the cache when available.
func (uc *MerchantUseCase) GetMerchant(ctx context.Context, id string) (*domain.Merchant, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, "merchant:"+id); err == nil && cached != "" {
			var merchant domain.Merchant
			if err := json.Unmarshal([]byte(cached), &merchant); err == nil {
				return &merchant, nil
			}
		}
	}

	merchant, err := uc.merchantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(merchant); err == nil {
			_ = uc.cache.Set(ctx, "merchant:"+id, string(data), MerchantCacheTTL)
		}
	}

	return merchant, nil
}

// SetMerchantStatus activates or suspends a merchant.
func (uc *MerchantUseCase) SetMerchantStatus(ctx context.Context, authz domain.AuthContext, id string, status domain.MerchantStatus) error {
	if err := authz.RequireAdmin(); err != nil {
		return err
	}

	if _, err := uc.merchantRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.merchantRepo.UpdateStatus(ctx, id, status, time.Now().UTC()); err != nil {
		return domain.NewOperationError("merchant.status", err)
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, "merchant:"+id)
	}

	return nil
}

// ListMerchantsInput represents input for listing merchants.
type ListMerchantsInput struct {
	Limit  int
	Offset int
}

// ListMerchants lists merchants with pagination.
func (uc *MerchantUseCase) ListMerchants(ctx context.Context, input ListMerchantsInput) ([]*domain.Merchant, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.merchantRepo.List(ctx, limit, offset)
}
