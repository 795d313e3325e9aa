package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/infrastructure/metrics"
)

// ConsistencyUseCase reports drift between a merchant's live balance and the
// sum of its funding entries. Amending an entry never re-chains the running
// total, so drift accumulates by design; this report makes it observable.
type ConsistencyUseCase struct {
	merchantRepo MerchantRepository
	fundingRepo  FundingRepository
	metrics      *metrics.Metrics
}

// NewConsistencyUseCase creates a new ConsistencyUseCase.
func NewConsistencyUseCase(merchantRepo MerchantRepository, fundingRepo FundingRepository) *ConsistencyUseCase {
	return &ConsistencyUseCase{
		merchantRepo: merchantRepo,
		fundingRepo:  fundingRepo,
	}
}

// WithMetrics attaches business metrics. Safe to skip; all recording is
// nil-guarded.
func (uc *ConsistencyUseCase) WithMetrics(m *metrics.Metrics) *ConsistencyUseCase {
	uc.metrics = m
	return uc
}

// DriftResult represents the drift check for one merchant.
type DriftResult struct {
	MerchantID   string
	LiveBalance  decimal.Decimal
	EntriesTotal decimal.Decimal
	Drift        decimal.Decimal
	IsConsistent bool
	CheckedAt    time.Time
}

// MerchantDrift computes live balance minus the sum of funding entry amounts.
func (uc *ConsistencyUseCase) MerchantDrift(ctx context.Context, merchantID string) (*DriftResult, error) {
	merchant, err := uc.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	total, err := uc.fundingRepo.SumAmountsByMerchant(ctx, merchantID)
	if err != nil {
		return nil, domain.NewOperationError("ledger.drift", err)
	}

	drift := merchant.Balance.Sub(total)

	if uc.metrics != nil {
		uc.metrics.DriftChecks.Inc()
		uc.metrics.LedgerDrift.WithLabelValues(merchantID).Set(drift.InexactFloat64())
	}

	return &DriftResult{
		MerchantID:   merchantID,
		LiveBalance:  merchant.Balance,
		EntriesTotal: total,
		Drift:        drift,
		IsConsistent: drift.IsZero(),
		CheckedAt:    time.Now().UTC(),
	}, nil
}

// DriftReport represents a platform-wide drift report.
type DriftReport struct {
	TotalMerchants      int
	ConsistentMerchants int
	Drifted             []*DriftResult
	CheckedAt           time.Time
}

// Report runs the drift check across all merchants.
func (uc *ConsistencyUseCase) Report(ctx context.Context) (*DriftReport, error) {
	limit, offset := domain.ValidatePagination(10000, 0)

	merchants, err := uc.merchantRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	report := &DriftReport{
		TotalMerchants: len(merchants),
		Drifted:        make([]*DriftResult, 0),
		CheckedAt:      time.Now().UTC(),
	}

	for _, merchant := range merchants {
		result, err := uc.MerchantDrift(ctx, merchant.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check merchant %s: %w", merchant.ID, err)
		}

		if result.IsConsistent {
			report.ConsistentMerchants++
		} else {
			report.Drifted = append(report.Drifted, result)
		}
	}

	if uc.metrics != nil {
		uc.metrics.DriftedMerchants.Set(float64(len(report.Drifted)))
	}

	return report, nil
}
