package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MerchantStatus represents the lifecycle state of a merchant.
type MerchantStatus string

const (
	MerchantStatusActive    MerchantStatus = "active"
	MerchantStatusSuspended MerchantStatus = "suspended"
)

// Merchant represents a merchant whose running balance is funded through the ledger.
type Merchant struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Balance   decimal.Decimal
	Status    MerchantStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeFunded reports whether the merchant may receive funding.
func (m *Merchant) CanBeFunded() bool {
	return m.Status == MerchantStatusActive
}

// ApplyCredit returns the merchant balance after crediting amount.
func (m *Merchant) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return m.Balance.Add(amount)
}
