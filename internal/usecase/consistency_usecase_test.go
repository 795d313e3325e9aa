package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/metzakaria/vendicore/internal/usecase"
	"github.com/metzakaria/vendicore/internal/usecase/mocks"
)

func TestConsistencyUseCase_MerchantDrift(t *testing.T) {
	merchantRepo := mocks.NewMockMerchantRepository()
	fundingRepo := mocks.NewMockFundingRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	idGen := mocks.NewMockIDGenerator()

	fundingUC := usecase.NewFundingUseCase(mocks.NewMockTransactionManager(), merchantRepo, fundingRepo, outboxRepo, nil, nil, idGen)
	consistencyUC := usecase.NewConsistencyUseCase(merchantRepo, fundingRepo)

	seedMerchant(merchantRepo, "mer-1", "0")

	created, err := fundingUC.CreateFunding(context.Background(), adminAuthz, usecase.CreateFundingInput{
		MerchantID: "mer-1",
		Amount:     "50.00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// freshly funded merchant is consistent
	result, err := consistencyUC.MerchantDrift(context.Background(), "mer-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.IsConsistent || !result.Drift.IsZero() {
		t.Errorf("expected zero drift, got %s", result.Drift)
	}

	// amending re-states the entry but not the running total, so drift appears
	if _, err := fundingUC.AmendFunding(context.Background(), adminAuthz, usecase.AmendFundingInput{
		Reference: created.Reference,
		Amount:    "75.00",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err = consistencyUC.MerchantDrift(context.Background(), "mer-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.IsConsistent {
		t.Error("expected drift after amendment")
	}

	if !result.Drift.Equal(decimal.NewFromInt(-25)) {
		t.Errorf("expected drift -25, got %s", result.Drift)
	}
}

func TestConsistencyUseCase_Report(t *testing.T) {
	merchantRepo := mocks.NewMockMerchantRepository()
	fundingRepo := mocks.NewMockFundingRepository()

	seedMerchant(merchantRepo, "mer-1", "50.00")
	seedMerchant(merchantRepo, "mer-2", "10.00")

	// mer-1 entries sum to its balance, mer-2 has no entries
	fundingRepo.SumAmountsByMerchantFunc = func(ctx context.Context, merchantID string) (decimal.Decimal, error) {
		if merchantID == "mer-1" {
			return decimal.NewFromInt(50), nil
		}

		return decimal.Zero, nil
	}

	uc := usecase.NewConsistencyUseCase(merchantRepo, fundingRepo)

	report, err := uc.Report(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalMerchants != 2 || report.ConsistentMerchants != 1 || len(report.Drifted) != 1 {
		t.Errorf("unexpected report: %+v", report)
	}

	if report.Drifted[0].MerchantID != "mer-2" {
		t.Errorf("expected mer-2 drifted, got %s", report.Drifted[0].MerchantID)
	}
}
