package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/metzakaria/vendicore/internal/domain"
)

// MerchantRepository defines data access for merchants.
type MerchantRepository interface {
	Create(ctx context.Context, merchant *domain.Merchant) error
	GetByID(ctx context.Context, id string) (*domain.Merchant, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Merchant, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateStatus(ctx context.Context, id string, status domain.MerchantStatus, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Merchant, error)
}

// FundingRepository defines data access for funding entries.
type FundingRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.FundingEntry) error
	GetByReference(ctx context.Context, reference string) (*domain.FundingEntry, error)
	GetByReferenceForUpdate(ctx context.Context, tx Transaction, reference string) (*domain.FundingEntry, error)
	Update(ctx context.Context, tx Transaction, entry *domain.FundingEntry) error
	ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.FundingEntry, error)
	SumAmountsByMerchant(ctx context.Context, merchantID string) (decimal.Decimal, error)
}

// ProductRepository defines data access for VAS products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
}

// ProviderRepository defines data access for provider accounts.
type ProviderRepository interface {
	Create(ctx context.Context, provider *domain.ProviderAccount) error
	GetByID(ctx context.Context, id string) (*domain.ProviderAccount, error)
	List(ctx context.Context, limit, offset int) ([]*domain.ProviderAccount, error)
}

// DiscountRepository defines data access for discounts.
type DiscountRepository interface {
	Create(ctx context.Context, discount *domain.Discount) error
	GetByID(ctx context.Context, id string) (*domain.Discount, error)
	ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.Discount, error)
}

// UserRepository defines data access for platform users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
