package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/usecase"
)

// MockMerchantRepository is a mock implementation of MerchantRepository.
type MockMerchantRepository struct {
	mu        sync.RWMutex
	merchants map[string]*domain.Merchant

	CreateFunc           func(ctx context.Context, merchant *domain.Merchant) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Merchant, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Merchant, error)
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateStatusFunc     func(ctx context.Context, id string, status domain.MerchantStatus, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Merchant, error)
}

func NewMockMerchantRepository() *MockMerchantRepository {
	return &MockMerchantRepository{
		merchants: make(map[string]*domain.Merchant),
	}
}

// Seed adds a merchant to the in-memory store.
func (m *MockMerchantRepository) Seed(merchant *domain.Merchant) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *merchant
	m.merchants[merchant.ID] = &clone
}

func (m *MockMerchantRepository) Create(ctx context.Context, merchant *domain.Merchant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, merchant)
	}

	m.Seed(merchant)

	return nil
}

func (m *MockMerchantRepository) GetByID(ctx context.Context, id string) (*domain.Merchant, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	merchant, ok := m.merchants[id]
	if !ok {
		return nil, domain.ErrMerchantNotFound
	}

	clone := *merchant

	return &clone, nil
}

func (m *MockMerchantRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Merchant, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}

	return m.GetByID(ctx, id)
}

func (m *MockMerchantRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	merchant, ok := m.merchants[id]
	if !ok {
		return domain.ErrMerchantNotFound
	}

	merchant.Balance = balance
	merchant.UpdatedAt = updatedAt

	return nil
}

func (m *MockMerchantRepository) UpdateStatus(ctx context.Context, id string, status domain.MerchantStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, updatedAt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	merchant, ok := m.merchants[id]
	if !ok {
		return domain.ErrMerchantNotFound
	}

	merchant.Status = status
	merchant.UpdatedAt = updatedAt

	return nil
}

func (m *MockMerchantRepository) List(ctx context.Context, limit, offset int) ([]*domain.Merchant, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	merchants := make([]*domain.Merchant, 0, len(m.merchants))
	for _, merchant := range m.merchants {
		clone := *merchant
		merchants = append(merchants, &clone)
	}

	return merchants, nil
}

// MockFundingRepository is a mock implementation of FundingRepository.
type MockFundingRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.FundingEntry

	CreateFunc                  func(ctx context.Context, tx usecase.Transaction, entry *domain.FundingEntry) error
	GetByReferenceFunc          func(ctx context.Context, reference string) (*domain.FundingEntry, error)
	GetByReferenceForUpdateFunc func(ctx context.Context, tx usecase.Transaction, reference string) (*domain.FundingEntry, error)
	UpdateFunc                  func(ctx context.Context, tx usecase.Transaction, entry *domain.FundingEntry) error
	ListByMerchantFunc          func(ctx context.Context, merchantID string, limit, offset int) ([]*domain.FundingEntry, error)
	SumAmountsByMerchantFunc    func(ctx context.Context, merchantID string) (decimal.Decimal, error)
}

func NewMockFundingRepository() *MockFundingRepository {
	return &MockFundingRepository{
		entries: make(map[string]*domain.FundingEntry),
	}
}

// Seed adds a funding entry to the in-memory store.
func (m *MockFundingRepository) Seed(entry *domain.FundingEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *entry
	m.entries[entry.Reference] = &clone
}

// Entry returns the stored entry by reference, or nil.
func (m *MockFundingRepository) Entry(reference string) *domain.FundingEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[reference]
	if !ok {
		return nil
	}

	clone := *entry

	return &clone
}

// Count returns the number of stored entries.
func (m *MockFundingRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

func (m *MockFundingRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.FundingEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}

	m.Seed(entry)

	return nil
}

func (m *MockFundingRepository) GetByReference(ctx context.Context, reference string) (*domain.FundingEntry, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, reference)
	}

	entry := m.Entry(reference)
	if entry == nil {
		return nil, domain.ErrFundingNotFound
	}

	return entry, nil
}

func (m *MockFundingRepository) GetByReferenceForUpdate(ctx context.Context, tx usecase.Transaction, reference string) (*domain.FundingEntry, error) {
	if m.GetByReferenceForUpdateFunc != nil {
		return m.GetByReferenceForUpdateFunc(ctx, tx, reference)
	}

	return m.GetByReference(ctx, reference)
}

func (m *MockFundingRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.FundingEntry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, entry)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[entry.Reference]; !ok {
		return domain.ErrFundingNotFound
	}

	clone := *entry
	m.entries[entry.Reference] = &clone

	return nil
}

func (m *MockFundingRepository) ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.FundingEntry, error) {
	if m.ListByMerchantFunc != nil {
		return m.ListByMerchantFunc(ctx, merchantID, limit, offset)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]*domain.FundingEntry, 0)
	for _, entry := range m.entries {
		if entry.MerchantID == merchantID {
			clone := *entry
			entries = append(entries, &clone)
		}
	}

	return entries, nil
}

func (m *MockFundingRepository) SumAmountsByMerchant(ctx context.Context, merchantID string) (decimal.Decimal, error) {
	if m.SumAmountsByMerchantFunc != nil {
		return m.SumAmountsByMerchantFunc(ctx, merchantID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	total := decimal.Zero
	for _, entry := range m.entries {
		if entry.MerchantID == merchantID {
			total = total.Add(entry.Amount)
		}
	}

	return total, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	mu         sync.Mutex
	committed  bool
	rolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.mu.Lock()
	t.committed = true
	t.mu.Unlock()

	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}

	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	t.mu.Lock()
	t.rolledBack = true
	t.mu.Unlock()

	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}

	return nil
}

// Committed reports whether Commit was called.
func (t *MockTransaction) Committed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.committed
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	return &MockTransaction{}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.counter++

	return fmt.Sprintf("id-%d", m.counter)
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.Mutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)

	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	unpublished := make([]*domain.OutboxEvent, 0)
	for _, event := range m.events {
		if !event.Published {
			unpublished = append(unpublished, event)
		}

		if len(unpublished) >= limit {
			break
		}
	}

	return unpublished, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, event := range m.events {
		if event.ID == id {
			event.Published = true
			event.PublishedAt = &publishedAt
		}
	}

	return nil
}

// Events returns all recorded outbox events.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*domain.OutboxEvent(nil), m.events...)
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.Mutex
	logs []*domain.AuditLog
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logs = append(m.logs, log)

	return nil
}

func (m *MockAuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	logs := make([]*domain.AuditLog, 0)
	for _, log := range m.logs {
		if log.ResourceType == resourceType && log.ResourceID == resourceID {
			logs = append(logs, log)
		}
	}

	return logs, nil
}

// Logs returns all recorded audit logs.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*domain.AuditLog(nil), m.logs...)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *user
	m.users[user.ID] = &clone

	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	clone := *user

	return &clone, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*domain.User, 0, len(m.users))
	for _, user := range m.users {
		clone := *user
		users = append(users, &clone)
	}

	return users, nil
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMockCache() *MockCache {
	return &MockCache{
		values: make(map[string]string),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.values[key], nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value

	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)

	return nil
}
