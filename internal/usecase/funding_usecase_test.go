package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/usecase"
	"github.com/metzakaria/vendicore/internal/usecase/mocks"
)

var adminAuthz = domain.AuthContext{UserID: "usr-admin", Role: domain.RoleAdmin, Authenticated: true}

func newFundingFixture() (*usecase.FundingUseCase, *mocks.MockMerchantRepository, *mocks.MockFundingRepository, *mocks.MockOutboxRepository, *mocks.MockAuditRepository) {
	merchantRepo := mocks.NewMockMerchantRepository()
	fundingRepo := mocks.NewMockFundingRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	auditRepo := mocks.NewMockAuditRepository()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	uc := usecase.NewFundingUseCase(txMgr, merchantRepo, fundingRepo, outboxRepo, auditRepo, nil, idGen)

	return uc, merchantRepo, fundingRepo, outboxRepo, auditRepo
}

func seedMerchant(repo *mocks.MockMerchantRepository, id, balance string) {
	b, _ := decimal.NewFromString(balance)
	repo.Seed(&domain.Merchant{
		ID:      id,
		Name:    "Acme Stores",
		Email:   "ops@acme.example",
		Balance: b,
		Status:  domain.MerchantStatusActive,
	})
}

func TestFundingUseCase_CreateFunding(t *testing.T) {
	uc, merchantRepo, fundingRepo, outboxRepo, _ := newFundingFixture()
	seedMerchant(merchantRepo, "mer-1", "100.00")

	entry, err := uc.CreateFunding(context.Background(), adminAuthz, usecase.CreateFundingInput{
		MerchantID:  "mer-1",
		Amount:      "50.00",
		Description: "wallet top-up",
		Source:      "bank-transfer",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !entry.BalanceBefore.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected balance before 100, got %s", entry.BalanceBefore)
	}

	if !entry.BalanceAfter.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected balance after 150, got %s", entry.BalanceAfter)
	}

	if !entry.BalanceAfter.Equal(entry.BalanceBefore.Add(entry.Amount)) {
		t.Error("balance invariant violated")
	}

	if entry.Reference == "" {
		t.Error("expected a generated reference")
	}

	// the merchant's live balance follows the entry
	merchant, err := merchantRepo.GetByID(context.Background(), "mer-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !merchant.Balance.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected merchant balance 150, got %s", merchant.Balance)
	}

	if fundingRepo.Count() != 1 {
		t.Errorf("expected 1 entry, got %d", fundingRepo.Count())
	}

	events := outboxRepo.Events()
	if len(events) != 1 || events[0].EventType != domain.EventTypeFundingCreated {
		t.Errorf("expected one funding.created event, got %+v", events)
	}
}

func TestFundingUseCase_CreateFunding_ExactDecimals(t *testing.T) {
	uc, merchantRepo, _, _, _ := newFundingFixture()
	seedMerchant(merchantRepo, "mer-1", "0.10")

	entry, err := uc.CreateFunding(context.Background(), adminAuthz, usecase.CreateFundingInput{
		MerchantID: "mer-1",
		Amount:     "0.20",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// no float drift: 0.10 + 0.20 is exactly 0.30
	if entry.BalanceAfter.String() != "0.3" {
		t.Errorf("expected 0.3, got %s", entry.BalanceAfter)
	}
}

func TestFundingUseCase_CreateFunding_Authorization(t *testing.T) {
	tests := []struct {
		name        string
		authz       domain.AuthContext
		expectError error
	}{
		{
			name:        "no session",
			authz:       domain.AuthContext{},
			expectError: domain.ErrUnauthorized,
		},
		{
			name:        "merchant role is forbidden",
			authz:       domain.AuthContext{UserID: "usr-1", Role: domain.RoleMerchant, Authenticated: true},
			expectError: domain.ErrForbidden,
		},
		{
			name:  "admin role succeeds",
			authz: domain.AuthContext{UserID: "usr-1", Role: domain.RoleAdmin, Authenticated: true},
		},
		{
			name:  "superadmin role succeeds",
			authz: domain.AuthContext{UserID: "usr-1", Role: domain.RoleSuperAdmin, Authenticated: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, merchantRepo, fundingRepo, _, _ := newFundingFixture()
			seedMerchant(merchantRepo, "mer-1", "0")

			_, err := uc.CreateFunding(context.Background(), tt.authz, usecase.CreateFundingInput{
				MerchantID: "mer-1",
				Amount:     "10.00",
			})

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Errorf("expected %v, got %v", tt.expectError, err)
				}

				if fundingRepo.Count() != 0 {
					t.Error("rejected create must not write an entry")
				}

				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFundingUseCase_CreateFunding_Validation(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{name: "zero amount", amount: "0"},
		{name: "negative amount", amount: "-50.00"},
		{name: "non-numeric amount", amount: "fifty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, merchantRepo, fundingRepo, _, _ := newFundingFixture()
			seedMerchant(merchantRepo, "mer-1", "100.00")

			_, err := uc.CreateFunding(context.Background(), adminAuthz, usecase.CreateFundingInput{
				MerchantID: "mer-1",
				Amount:     tt.amount,
			})

			if !errors.Is(err, domain.ErrInvalidAmount) {
				t.Errorf("expected ErrInvalidAmount, got %v", err)
			}

			if fundingRepo.Count() != 0 {
				t.Error("no record may be written on validation failure")
			}

			merchant, _ := merchantRepo.GetByID(context.Background(), "mer-1")
			if !merchant.Balance.Equal(decimal.NewFromInt(100)) {
				t.Error("merchant balance must be untouched")
			}
		})
	}
}

func TestFundingUseCase_CreateFunding_MerchantNotFound(t *testing.T) {
	uc, _, _, _, _ := newFundingFixture()

	_, err := uc.CreateFunding(context.Background(), adminAuthz, usecase.CreateFundingInput{
		MerchantID: "missing",
		Amount:     "10.00",
	})

	if !errors.Is(err, domain.ErrMerchantNotFound) {
		t.Errorf("expected ErrMerchantNotFound, got %v", err)
	}
}

func TestFundingUseCase_CreateFunding_SuspendedMerchant(t *testing.T) {
	uc, merchantRepo, _, _, _ := newFundingFixture()
	merchantRepo.Seed(&domain.Merchant{
		ID:      "mer-1",
		Status:  domain.MerchantStatusSuspended,
		Balance: decimal.Zero,
	})

	_, err := uc.CreateFunding(context.Background(), adminAuthz, usecase.CreateFundingInput{
		MerchantID: "mer-1",
		Amount:     "10.00",
	})

	if !errors.Is(err, domain.ErrMerchantSuspended) {
		t.Errorf("expected ErrMerchantSuspended, got %v", err)
	}
}

func TestFundingUseCase_CreateFunding_PersistenceFailure(t *testing.T) {
	uc, merchantRepo, fundingRepo, _, _ := newFundingFixture()
	seedMerchant(merchantRepo, "mer-1", "100.00")

	fundingRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, entry *domain.FundingEntry) error {
		return errors.New("connection reset")
	}

	_, err := uc.CreateFunding(context.Background(), adminAuthz, usecase.CreateFundingInput{
		MerchantID: "mer-1",
		Amount:     "10.00",
	})

	var opErr *domain.OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %v", err)
	}

	if opErr.Op != "funding.create" {
		t.Errorf("unexpected op: %s", opErr.Op)
	}
}

func TestFundingUseCase_AmendFunding(t *testing.T) {
	uc, merchantRepo, fundingRepo, outboxRepo, _ := newFundingFixture()
	seedMerchant(merchantRepo, "mer-1", "100.00")

	created, err := uc.CreateFunding(context.Background(), adminAuthz, usecase.CreateFundingInput{
		MerchantID:  "mer-1",
		Amount:      "50.00",
		Description: "initial",
		Source:      "bank-transfer",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	amended, err := uc.AmendFunding(context.Background(), adminAuthz, usecase.AmendFundingInput{
		Reference:   created.Reference,
		Amount:      "75.00",
		Description: "corrected",
		Source:      "manual",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// balance_before is the historical snapshot, balance_after re-derives
	if !amended.BalanceBefore.Equal(decimal.NewFromInt(100)) {
		t.Errorf("balance before changed: %s", amended.BalanceBefore)
	}

	if !amended.BalanceAfter.Equal(decimal.NewFromInt(175)) {
		t.Errorf("expected balance after 175, got %s", amended.BalanceAfter)
	}

	if amended.Reference != created.Reference || amended.MerchantID != "mer-1" {
		t.Error("identity fields changed")
	}

	if !amended.CreatedAt.Equal(created.CreatedAt) {
		t.Error("created at changed")
	}

	if amended.Description != "corrected" || amended.Source != "manual" {
		t.Error("mutable fields not applied")
	}

	// amendment corrects the historical record, not the running total
	merchant, _ := merchantRepo.GetByID(context.Background(), "mer-1")
	if !merchant.Balance.Equal(decimal.NewFromInt(150)) {
		t.Errorf("merchant balance must stay 150, got %s", merchant.Balance)
	}

	stored := fundingRepo.Entry(created.Reference)
	if !stored.Amount.Equal(decimal.NewFromInt(75)) {
		t.Errorf("amended amount not persisted, got %s", stored.Amount)
	}

	events := outboxRepo.Events()
	if len(events) != 2 || events[1].EventType != domain.EventTypeFundingAmended {
		t.Errorf("expected funding.amended event, got %+v", events)
	}
}

func TestFundingUseCase_AmendFunding_NotFound(t *testing.T) {
	uc, merchantRepo, fundingRepo, _, _ := newFundingFixture()
	seedMerchant(merchantRepo, "mer-1", "100.00")

	before := fundingRepo.Count()

	_, err := uc.AmendFunding(context.Background(), adminAuthz, usecase.AmendFundingInput{
		Reference: "no-such-reference",
		Amount:    "10.00",
	})

	if !errors.Is(err, domain.ErrFundingNotFound) {
		t.Errorf("expected ErrFundingNotFound, got %v", err)
	}

	if fundingRepo.Count() != before {
		t.Error("failed amend must leave records untouched")
	}
}

func TestFundingUseCase_AmendFunding_Validation(t *testing.T) {
	uc, merchantRepo, fundingRepo, _, _ := newFundingFixture()
	seedMerchant(merchantRepo, "mer-1", "100.00")

	created, err := uc.CreateFunding(context.Background(), adminAuthz, usecase.CreateFundingInput{
		MerchantID: "mer-1",
		Amount:     "50.00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, amount := range []string{"0", "-1", "NaN"} {
		_, err := uc.AmendFunding(context.Background(), adminAuthz, usecase.AmendFundingInput{
			Reference: created.Reference,
			Amount:    amount,
		})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("amount %q: expected ErrInvalidAmount, got %v", amount, err)
		}
	}

	stored := fundingRepo.Entry(created.Reference)
	if !stored.Amount.Equal(decimal.NewFromInt(50)) {
		t.Error("rejected amend must not alter the stored entry")
	}
}

func TestFundingUseCase_AmendFunding_Forbidden(t *testing.T) {
	uc, merchantRepo, _, _, _ := newFundingFixture()
	seedMerchant(merchantRepo, "mer-1", "100.00")

	created, err := uc.CreateFunding(context.Background(), adminAuthz, usecase.CreateFundingInput{
		MerchantID: "mer-1",
		Amount:     "50.00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	merchantAuthz := domain.AuthContext{UserID: "usr-2", Role: domain.RoleMerchant, Authenticated: true}

	_, err = uc.AmendFunding(context.Background(), merchantAuthz, usecase.AmendFundingInput{
		Reference: created.Reference,
		Amount:    "75.00",
	})

	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

// lockingTx emulates the row lock taken by GetByIDForUpdate: the lock is
// held from the locked read until the transaction ends.
type lockingTx struct {
	row *sync.Mutex

	mu   sync.Mutex
	held bool
}

func (t *lockingTx) acquire() {
	t.row.Lock()

	t.mu.Lock()
	t.held = true
	t.mu.Unlock()
}

func (t *lockingTx) release() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.held {
		t.held = false
		t.row.Unlock()
	}
}

func (t *lockingTx) Commit(ctx context.Context) error {
	t.release()
	return nil
}

func (t *lockingTx) Rollback(ctx context.Context) error {
	t.release()
	return nil
}

func TestFundingUseCase_ConcurrentCreates_NoLostUpdate(t *testing.T) {
	merchantRepo := mocks.NewMockMerchantRepository()
	fundingRepo := mocks.NewMockFundingRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	seedMerchant(merchantRepo, "mer-1", "0.00")

	var row sync.Mutex

	txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return &lockingTx{row: &row}, nil
	}

	merchantRepo.GetByIDForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Merchant, error) {
		tx.(*lockingTx).acquire()
		return merchantRepo.GetByID(ctx, id)
	}

	uc := usecase.NewFundingUseCase(txMgr, merchantRepo, fundingRepo, outboxRepo, nil, nil, idGen)

	amounts := []string{"10.00", "20.00"}

	var wg sync.WaitGroup
	errs := make([]error, len(amounts))

	for i, amount := range amounts {
		wg.Add(1)

		go func(i int, amount string) {
			defer wg.Done()

			_, errs[i] = uc.CreateFunding(context.Background(), adminAuthz, usecase.CreateFundingInput{
				MerchantID: "mer-1",
				Amount:     amount,
			})
		}(i, amount)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	merchant, _ := merchantRepo.GetByID(context.Background(), "mer-1")
	if !merchant.Balance.Equal(decimal.NewFromInt(30)) {
		t.Errorf("lost update: expected balance 30, got %s", merchant.Balance)
	}

	if fundingRepo.Count() != 2 {
		t.Errorf("expected 2 entries, got %d", fundingRepo.Count())
	}
}

func TestFundingUseCase_CreateFunding_WritesAudit(t *testing.T) {
	uc, merchantRepo, _, _, auditRepo := newFundingFixture()
	seedMerchant(merchantRepo, "mer-1", "100.00")

	entry, err := uc.CreateFunding(context.Background(), adminAuthz, usecase.CreateFundingInput{
		MerchantID: "mer-1",
		Amount:     "50.00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logs, err := auditRepo.GetByResourceID(context.Background(), domain.AggregateTypeFunding, entry.Reference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(logs) != 1 {
		t.Fatalf("expected 1 audit log, got %d", len(logs))
	}

	if logs[0].UserID != "usr-admin" || logs[0].Action != string(domain.AuditActionFundingCreate) {
		t.Errorf("unexpected audit log: %+v", logs[0])
	}
}

func TestFundingUseCase_ListFundingsByMerchant_CapsLimit(t *testing.T) {
	uc, _, fundingRepo, _, _ := newFundingFixture()

	var gotLimit int
	fundingRepo.ListByMerchantFunc = func(ctx context.Context, merchantID string, limit, offset int) ([]*domain.FundingEntry, error) {
		gotLimit = limit
		return nil, nil
	}

	if _, err := uc.ListFundingsByMerchant(context.Background(), usecase.ListFundingsByMerchantInput{
		MerchantID: "mer-1",
		Limit:      5000,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotLimit != 100 {
		t.Errorf("expected limit capped at 100, got %d", gotLimit)
	}
}

func TestFundingUseCase_CreateFunding_RefreshesUpdatedAt(t *testing.T) {
	uc, merchantRepo, _, _, _ := newFundingFixture()
	seedMerchant(merchantRepo, "mer-1", "0")

	created, err := uc.CreateFunding(context.Background(), adminAuthz, usecase.CreateFundingInput{
		MerchantID: "mer-1",
		Amount:     "10.00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	amended, err := uc.AmendFunding(context.Background(), adminAuthz, usecase.AmendFundingInput{
		Reference: created.Reference,
		Amount:    "12.00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !amended.UpdatedAt.After(created.UpdatedAt) {
		t.Error("updated at must be refreshed on amendment")
	}
}

func TestFundingUseCase_FundingAuditTrail(t *testing.T) {
	uc, merchantRepo, _, _, _ := newFundingFixture()
	seedMerchant(merchantRepo, "mer-1", "100.00")

	entry, err := uc.CreateFunding(context.Background(), adminAuthz, usecase.CreateFundingInput{
		MerchantID: "mer-1",
		Amount:     "50.00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = uc.AmendFunding(context.Background(), adminAuthz, usecase.AmendFundingInput{
		Reference: entry.Reference,
		Amount:    "30.00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logs, err := uc.FundingAuditTrail(context.Background(), adminAuthz, entry.Reference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(logs) != 2 {
		t.Fatalf("expected 2 audit logs, got %d", len(logs))
	}

	merchantAuthz := domain.AuthContext{UserID: "usr-2", Role: domain.RoleMerchant, Authenticated: true}
	if _, err := uc.FundingAuditTrail(context.Background(), merchantAuthz, entry.Reference); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
