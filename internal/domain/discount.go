package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount represents a percentage discount granted to a merchant on a product.
type Discount struct {
	ID         string
	ProductID  string
	MerchantID string
	Rate       decimal.Decimal
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the discount rate is a percentage between 0 and 100.
func (d *Discount) Validate() error {
	if d.Rate.IsNegative() || d.Rate.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidAmount
	}

	return nil
}
