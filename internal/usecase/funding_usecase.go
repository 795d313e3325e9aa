package usecase

import (
	"context"
	"time"

	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/infrastructure/metrics"
)

// FundingUseCase handles the merchant funding ledger.
//
// Create snapshots the merchant balance inside the same transaction that
// writes the entry, so balance_before + amount == balance_after holds for
// every committed entry. Amend recomputes balance_after from the stored
// balance_before snapshot only; the merchant's live balance is not re-chained.
type FundingUseCase struct {
	txManager    TransactionManager
	merchantRepo MerchantRepository
	fundingRepo  FundingRepository
	outboxRepo   OutboxRepository
	auditRepo    AuditRepository
	cache        Cache
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewFundingUseCase creates a new FundingUseCase.
func NewFundingUseCase(
	txManager TransactionManager,
	merchantRepo MerchantRepository,
	fundingRepo FundingRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	cache Cache,
	idGen IDGenerator,
) *FundingUseCase {
	return &FundingUseCase{
		txManager:    txManager,
		merchantRepo: merchantRepo,
		fundingRepo:  fundingRepo,
		outboxRepo:   outboxRepo,
		auditRepo:    auditRepo,
		cache:        cache,
		idGen:        idGen,
	}
}

// WithMetrics attaches business metrics. Safe to skip; all recording is
// nil-guarded.
func (uc *FundingUseCase) WithMetrics(m *metrics.Metrics) *FundingUseCase {
	uc.metrics = m
	return uc
}

// CreateFundingInput represents input for creating a funding entry.
type CreateFundingInput struct {
	MerchantID  string
	Amount      string
	Description string
	Source      string
}

// CreateFunding credits a merchant and records the funding entry.
func (uc *FundingUseCase) CreateFunding(ctx context.Context, authz domain.AuthContext, input CreateFundingInput) (*domain.FundingEntry, error) {
	if err := authz.RequireFunding(); err != nil {
		return nil, err
	}

	amount, err := domain.ParseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateFundingSource(input.Source); err != nil {
		return nil, err
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, domain.NewOperationError("funding.create", err)
	}
	defer tx.Rollback(ctx)

	// Lock the merchant row so concurrent creates cannot read the same
	// stale balance_before.
	merchant, err := uc.merchantRepo.GetByIDForUpdate(ctx, tx, input.MerchantID)
	if err != nil {
		return nil, err
	}

	if !merchant.CanBeFunded() {
		return nil, domain.ErrMerchantSuspended
	}

	now := time.Now().UTC()

	entry := &domain.FundingEntry{
		Reference:     uc.idGen.Generate(),
		MerchantID:    merchant.ID,
		Amount:        amount,
		BalanceBefore: merchant.Balance,
		BalanceAfter:  merchant.ApplyCredit(amount),
		Description:   input.Description,
		Source:        input.Source,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.fundingRepo.Create(ctx, tx, entry); err != nil {
		return nil, domain.NewOperationError("funding.create", err)
	}

	if err := uc.merchantRepo.UpdateBalance(ctx, tx, merchant.ID, entry.BalanceAfter, now); err != nil {
		return nil, domain.NewOperationError("funding.create", err)
	}

	if err := uc.writeOutboxEvent(ctx, tx, entry, domain.EventTypeFundingCreated, now); err != nil {
		return nil, domain.NewOperationError("funding.create", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.NewOperationError("funding.create", err)
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, "merchant:"+merchant.ID)
	}

	if uc.metrics != nil {
		uc.metrics.FundingsCreated.Inc()
		uc.metrics.FundingAmount.Observe(amount.InexactFloat64())
		uc.metrics.FundingDuration.Observe(time.Since(now).Seconds())
		uc.metrics.MerchantBalance.WithLabelValues(merchant.ID).Set(entry.BalanceAfter.InexactFloat64())
	}

	uc.audit(ctx, authz, domain.AuditActionFundingCreate, entry, nil)

	return entry, nil
}

// AmendFundingInput represents input for amending a funding entry.
type AmendFundingInput struct {
	Reference   string
	Amount      string
	Description string
	Source      string
}

// AmendFunding corrects an existing funding entry. The stored balance_before
// is reused as-is; only the historical record's stated balance_after changes,
// never the merchant's running total.
func (uc *FundingUseCase) AmendFunding(ctx context.Context, authz domain.AuthContext, input AmendFundingInput) (*domain.FundingEntry, error) {
	if err := authz.RequireFunding(); err != nil {
		return nil, err
	}

	amount, err := domain.ParseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateFundingSource(input.Source); err != nil {
		return nil, err
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, domain.NewOperationError("funding.amend", err)
	}
	defer tx.Rollback(ctx)

	entry, err := uc.fundingRepo.GetByReferenceForUpdate(ctx, tx, input.Reference)
	if err != nil {
		return nil, err
	}

	before := *entry

	now := time.Now().UTC()
	if err := entry.Amend(amount, input.Description, input.Source, now); err != nil {
		return nil, err
	}

	if err := uc.fundingRepo.Update(ctx, tx, entry); err != nil {
		return nil, domain.NewOperationError("funding.amend", err)
	}

	if err := uc.writeOutboxEvent(ctx, tx, entry, domain.EventTypeFundingAmended, now); err != nil {
		return nil, domain.NewOperationError("funding.amend", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.NewOperationError("funding.amend", err)
	}

	if uc.metrics != nil {
		uc.metrics.FundingsAmended.Inc()
		uc.metrics.FundingDuration.Observe(time.Since(now).Seconds())
	}

	uc.audit(ctx, authz, domain.AuditActionFundingAmend, entry, &before)

	return entry, nil
}

// GetFunding retrieves a funding entry by reference.
func (uc *FundingUseCase) GetFunding(ctx context.Context, reference string) (*domain.FundingEntry, error) {
	return uc.fundingRepo.GetByReference(ctx, reference)
}

// ListFundingsByMerchantInput represents input for listing funding entries.
type ListFundingsByMerchantInput struct {
	MerchantID string
	Limit      int
	Offset     int
}

// ListFundingsByMerchant lists funding entries for a merchant.
func (uc *FundingUseCase) ListFundingsByMerchant(ctx context.Context, input ListFundingsByMerchantInput) ([]*domain.FundingEntry, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.fundingRepo.ListByMerchant(ctx, input.MerchantID, input.Limit, input.Offset)
}

// FundingAuditTrail returns the audit trail of a funding entry, newest first.
func (uc *FundingUseCase) FundingAuditTrail(ctx context.Context, authz domain.AuthContext, reference string) ([]*domain.AuditLog, error) {
	if err := authz.RequireAdmin(); err != nil {
		return nil, err
	}

	if uc.auditRepo == nil {
		return []*domain.AuditLog{}, nil
	}

	logs, err := uc.auditRepo.GetByResourceID(ctx, domain.AggregateTypeFunding, reference)
	if err != nil {
		return nil, domain.NewOperationError("funding.audit_trail", err)
	}

	return logs, nil
}

func (uc *FundingUseCase) writeOutboxEvent(ctx context.Context, tx Transaction, entry *domain.FundingEntry, eventType string, now time.Time) error {
	payload := map[string]any{
		"reference":      entry.Reference,
		"merchant_id":    entry.MerchantID,
		"amount":         entry.Amount.String(),
		"balance_before": entry.BalanceBefore.String(),
		"balance_after":  entry.BalanceAfter.String(),
		"source":         entry.Source,
	}

	return uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   entry.Reference,
		AggregateType: domain.AggregateTypeFunding,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     now,
	})
}

// audit records the mutation best-effort; a failed audit write never fails
// the committed mutation.
func (uc *FundingUseCase) audit(ctx context.Context, authz domain.AuthContext, action domain.AuditAction, after, before *domain.FundingEntry) {
	if uc.auditRepo == nil {
		return
	}

	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		UserID:       authz.UserID,
		Action:       string(action),
		ResourceType: domain.AggregateTypeFunding,
		ResourceID:   after.Reference,
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}

	if before != nil {
		log.BeforeState = domain.MarshalState(before)
	}

	_ = uc.auditRepo.Create(ctx, log)

	if uc.metrics != nil {
		uc.metrics.AuditLogsCreated.WithLabelValues(log.Action).Inc()
	}
}
