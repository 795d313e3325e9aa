package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a value-added-service product offered to merchants.
type Product struct {
	ID         string
	Name       string
	Code       string
	ProviderID string
	Price      decimal.Decimal
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate validates the product fields.
func (p *Product) Validate() error {
	if err := ValidateProductCode(p.Code); err != nil {
		return err
	}

	if p.Name == "" {
		return ErrInvalidProductName
	}

	if p.Price.IsNegative() {
		return ErrInvalidAmount
	}

	return nil
}
