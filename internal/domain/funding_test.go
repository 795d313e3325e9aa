package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}

	return d
}

func TestFundingEntry_DeriveBalanceAfter(t *testing.T) {
	tests := []struct {
		name          string
		balanceBefore string
		amount        string
		want          string
	}{
		{
			name:          "whole amounts",
			balanceBefore: "100.00",
			amount:        "50.00",
			want:          "150.00",
		},
		{
			name:          "fractional cents stay exact",
			balanceBefore: "0.10",
			amount:        "0.20",
			want:          "0.30",
		},
		{
			name:          "large balance",
			balanceBefore: "999999999.99",
			amount:        "0.01",
			want:          "1000000000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &FundingEntry{BalanceBefore: mustDecimal(t, tt.balanceBefore)}

			got := entry.DeriveBalanceAfter(mustDecimal(t, tt.amount))

			if !got.Equal(mustDecimal(t, tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestFundingEntry_Amend(t *testing.T) {
	createdAt := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	entry := &FundingEntry{
		Reference:     "ref-1",
		MerchantID:    "mer-1",
		Amount:        mustDecimal(t, "50.00"),
		BalanceBefore: mustDecimal(t, "100.00"),
		BalanceAfter:  mustDecimal(t, "150.00"),
		Description:   "initial funding",
		Source:        "bank-transfer",
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}

	amendedAt := createdAt.Add(time.Hour)
	if err := entry.Amend(mustDecimal(t, "75.00"), "corrected funding", "manual", amendedAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// balance_before is a historical fact, balance_after re-derives from it
	if !entry.BalanceBefore.Equal(mustDecimal(t, "100.00")) {
		t.Errorf("balance before changed: %s", entry.BalanceBefore)
	}

	if !entry.BalanceAfter.Equal(mustDecimal(t, "175.00")) {
		t.Errorf("expected balance after 175.00, got %s", entry.BalanceAfter)
	}

	if entry.Reference != "ref-1" || entry.MerchantID != "mer-1" {
		t.Error("identity fields changed")
	}

	if !entry.CreatedAt.Equal(createdAt) {
		t.Error("created at changed")
	}

	if !entry.UpdatedAt.Equal(amendedAt) {
		t.Error("updated at not refreshed")
	}

	if entry.Description != "corrected funding" || entry.Source != "manual" {
		t.Error("mutable fields not applied")
	}
}

func TestFundingEntry_Amend_RejectsNonPositiveAmount(t *testing.T) {
	entry := &FundingEntry{
		Amount:        mustDecimal(t, "50.00"),
		BalanceBefore: mustDecimal(t, "100.00"),
		BalanceAfter:  mustDecimal(t, "150.00"),
	}

	for _, amount := range []string{"0", "-10.00"} {
		err := entry.Amend(mustDecimal(t, amount), "", "", time.Now())
		if err != ErrInvalidAmount {
			t.Errorf("amount %s: expected ErrInvalidAmount, got %v", amount, err)
		}
	}

	// rejected amend leaves the entry untouched
	if !entry.Amount.Equal(mustDecimal(t, "50.00")) || !entry.BalanceAfter.Equal(mustDecimal(t, "150.00")) {
		t.Error("entry mutated by rejected amend")
	}
}

func TestFundingEntry_Validate(t *testing.T) {
	tests := []struct {
		name        string
		entry       FundingEntry
		expectError error
	}{
		{
			name: "valid entry",
			entry: FundingEntry{
				Amount:        decimal.NewFromInt(50),
				BalanceBefore: decimal.NewFromInt(100),
				BalanceAfter:  decimal.NewFromInt(150),
				Source:        "manual",
			},
		},
		{
			name: "zero amount",
			entry: FundingEntry{
				Amount:        decimal.Zero,
				BalanceBefore: decimal.NewFromInt(100),
				BalanceAfter:  decimal.NewFromInt(100),
			},
			expectError: ErrInvalidAmount,
		},
		{
			name: "drifted balance after",
			entry: FundingEntry{
				Amount:        decimal.NewFromInt(50),
				BalanceBefore: decimal.NewFromInt(100),
				BalanceAfter:  decimal.NewFromInt(100),
			},
			expectError: ErrBalanceMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if tt.expectError != nil && err != tt.expectError {
				t.Errorf("expected %v, got %v", tt.expectError, err)
			}
		})
	}
}
