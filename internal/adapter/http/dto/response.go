package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/usecase"
)

// Envelope wraps every API response. Decimal fields marshal as quoted
// strings, so balances survive the wire exactly.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// FundingResponse represents a funding entry in API responses.
type FundingResponse struct {
	Reference     string          `json:"reference"`
	MerchantID    string          `json:"merchant_id"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Description   string          `json:"description,omitempty"`
	Source        string          `json:"source,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// FundingFromDomain converts a domain funding entry to a response.
func FundingFromDomain(e *domain.FundingEntry) *FundingResponse {
	return &FundingResponse{
		Reference:     e.Reference,
		MerchantID:    e.MerchantID,
		Amount:        e.Amount,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		Description:   e.Description,
		Source:        e.Source,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// FundingsFromDomain converts domain funding entries to responses.
func FundingsFromDomain(entries []*domain.FundingEntry) []*FundingResponse {
	result := make([]*FundingResponse, len(entries))
	for i, e := range entries {
		result[i] = FundingFromDomain(e)
	}
	return result
}

// MerchantResponse represents a merchant in API responses.
type MerchantResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MerchantFromDomain converts a domain merchant to a response.
func MerchantFromDomain(m *domain.Merchant) *MerchantResponse {
	return &MerchantResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Balance:   m.Balance,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// MerchantsFromDomain converts domain merchants to responses.
func MerchantsFromDomain(merchants []*domain.Merchant) []*MerchantResponse {
	result := make([]*MerchantResponse, len(merchants))
	for i, m := range merchants {
		result[i] = MerchantFromDomain(m)
	}
	return result
}

// ProductResponse represents a VAS product in API responses.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Code       string          `json:"code"`
	ProviderID string          `json:"provider_id"`
	Price      decimal.Decimal `json:"price"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductFromDomain converts a domain product to a response.
func ProductFromDomain(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Code:       p.Code,
		ProviderID: p.ProviderID,
		Price:      p.Price,
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ProductsFromDomain converts domain products to responses.
func ProductsFromDomain(products []*domain.Product) []*ProductResponse {
	result := make([]*ProductResponse, len(products))
	for i, p := range products {
		result[i] = ProductFromDomain(p)
	}
	return result
}

// ProviderResponse represents a provider account in API responses.
type ProviderResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Channel       string    `json:"channel"`
	AccountNumber string    `json:"account_number"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProviderFromDomain converts a domain provider account to a response.
func ProviderFromDomain(p *domain.ProviderAccount) *ProviderResponse {
	return &ProviderResponse{
		ID:            p.ID,
		Name:          p.Name,
		Channel:       p.Channel,
		AccountNumber: p.AccountNumber,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ProvidersFromDomain converts domain provider accounts to responses.
func ProvidersFromDomain(providers []*domain.ProviderAccount) []*ProviderResponse {
	result := make([]*ProviderResponse, len(providers))
	for i, p := range providers {
		result[i] = ProviderFromDomain(p)
	}
	return result
}

// DiscountResponse represents a discount in API responses.
type DiscountResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	MerchantID string          `json:"merchant_id"`
	Rate       decimal.Decimal `json:"rate"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// DiscountFromDomain converts a domain discount to a response.
func DiscountFromDomain(d *domain.Discount) *DiscountResponse {
	return &DiscountResponse{
		ID:         d.ID,
		ProductID:  d.ProductID,
		MerchantID: d.MerchantID,
		Rate:       d.Rate,
		Active:     d.Active,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// DiscountsFromDomain converts domain discounts to responses.
func DiscountsFromDomain(discounts []*domain.Discount) []*DiscountResponse {
	result := make([]*DiscountResponse, len(discounts))
	for i, d := range discounts {
		result[i] = DiscountFromDomain(d)
	}
	return result
}

// UserResponse represents a platform user in API responses. The password
// hash never leaves the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, len(users))
	for i, u := range users {
		result[i] = UserFromDomain(u)
	}
	return result
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// DriftResponse represents a merchant drift check in API responses.
type DriftResponse struct {
	MerchantID   string          `json:"merchant_id"`
	LiveBalance  decimal.Decimal `json:"live_balance"`
	EntriesTotal decimal.Decimal `json:"entries_total"`
	Drift        decimal.Decimal `json:"drift"`
	IsConsistent bool            `json:"is_consistent"`
	CheckedAt    time.Time       `json:"checked_at"`
}

// DriftFromResult converts a drift check result to a response.
func DriftFromResult(r *usecase.DriftResult) *DriftResponse {
	return &DriftResponse{
		MerchantID:   r.MerchantID,
		LiveBalance:  r.LiveBalance,
		EntriesTotal: r.EntriesTotal,
		Drift:        r.Drift,
		IsConsistent: r.IsConsistent,
		CheckedAt:    r.CheckedAt,
	}
}

// AuditLogResponse represents an audit trail entry in API responses.
type AuditLogResponse struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	Action       string      `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	BeforeState  domain.JSON `json:"before_state,omitempty"`
	AfterState   domain.JSON `json:"after_state,omitempty"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:           l.ID,
			UserID:       l.UserID,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			BeforeState:  l.BeforeState,
			AfterState:   l.AfterState,
			Status:       l.Status,
			CreatedAt:    l.CreatedAt,
		}
	}
	return result
}
