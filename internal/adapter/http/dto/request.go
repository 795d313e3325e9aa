package dto

import (
	"github.com/metzakaria/vendicore/internal/usecase"
)

// CreateFundingRequest represents a request to fund a merchant. Amounts
// travel as strings and are parsed by the use case, never as floats.
type CreateFundingRequest struct {
	MerchantID  string `json:"merchant_id"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateFundingRequest) ToUseCaseInput() usecase.CreateFundingInput {
	return usecase.CreateFundingInput{
		MerchantID:  r.MerchantID,
		Amount:      r.Amount,
		Description: r.Description,
		Source:      r.Source,
	}
}

// AmendFundingRequest represents a request to amend a funding entry. The
// reference comes from the URL, not the body.
type AmendFundingRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AmendFundingRequest) ToUseCaseInput(reference string) usecase.AmendFundingInput {
	return usecase.AmendFundingInput{
		Reference:   reference,
		Amount:      r.Amount,
		Description: r.Description,
		Source:      r.Source,
	}
}

// CreateMerchantRequest represents a request to register a merchant.
type CreateMerchantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateMerchantRequest) ToUseCaseInput() usecase.CreateMerchantInput {
	return usecase.CreateMerchantInput{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
	}
}

// UpdateMerchantStatusRequest represents a merchant status change.
type UpdateMerchantStatusRequest struct {
	Status string `json:"status"`
}

// CreateProductRequest represents a request to create a VAS product.
type CreateProductRequest struct {
	Name       string `json:"name"`
	Code       string `json:"code"`
	ProviderID string `json:"provider_id"`
	Price      string `json:"price"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateProductRequest) ToUseCaseInput() usecase.CreateProductInput {
	return usecase.CreateProductInput{
		Name:       r.Name,
		Code:       r.Code,
		ProviderID: r.ProviderID,
		Price:      r.Price,
	}
}

// SetProductActiveRequest toggles product availability.
type SetProductActiveRequest struct {
	Active bool `json:"active"`
}

// CreateProviderRequest represents a request to register a provider account.
type CreateProviderRequest struct {
	Name          string `json:"name"`
	Channel       string `json:"channel"`
	AccountNumber string `json:"account_number"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateProviderRequest) ToUseCaseInput() usecase.CreateProviderInput {
	return usecase.CreateProviderInput{
		Name:          r.Name,
		Channel:       r.Channel,
		AccountNumber: r.AccountNumber,
	}
}

// CreateDiscountRequest represents a request to grant a merchant discount.
type CreateDiscountRequest struct {
	ProductID  string `json:"product_id"`
	MerchantID string `json:"merchant_id"`
	Rate       string `json:"rate"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDiscountRequest) ToUseCaseInput() usecase.CreateDiscountInput {
	return usecase.CreateDiscountInput{
		ProductID:  r.ProductID,
		MerchantID: r.MerchantID,
		Rate:       r.Rate,
	}
}

// CreateUserRequest represents a request to create a platform user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
		Role:     r.Role,
	}
}

// LoginRequest represents a login attempt.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
