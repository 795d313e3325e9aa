package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundingEntry represents a single credit recorded against a merchant's balance.
//
// BalanceBefore is the merchant balance captured at creation and is never
// altered afterward. BalanceAfter is derived as BalanceBefore + Amount and is
// recomputed whenever Amount changes.
type FundingEntry struct {
	Reference     string
	MerchantID    string
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Description   string
	Source        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DeriveBalanceAfter returns the balance-after snapshot for the given amount.
func (f *FundingEntry) DeriveBalanceAfter(amount decimal.Decimal) decimal.Decimal {
	return f.BalanceBefore.Add(amount)
}

// Amend applies a new amount, description and source, recomputing BalanceAfter
// from the stored BalanceBefore. BalanceBefore, Reference, MerchantID and
// CreatedAt are untouched.
func (f *FundingEntry) Amend(amount decimal.Decimal, description, source string, at time.Time) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	f.Amount = amount
	f.BalanceAfter = f.DeriveBalanceAfter(amount)
	f.Description = description
	f.Source = source
	f.UpdatedAt = at

	return nil
}

// Validate checks the funding entry invariants.
func (f *FundingEntry) Validate() error {
	if f.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !f.BalanceAfter.Equal(f.BalanceBefore.Add(f.Amount)) {
		return ErrBalanceMismatch
	}

	return ValidateFundingSource(f.Source)
}
