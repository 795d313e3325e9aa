package usecase

import (
	"context"
	"time"

	"github.com/metzakaria/vendicore/internal/domain"
)

// ProductUseCase handles the VAS product and discount catalog.
type ProductUseCase struct {
	productRepo  ProductRepository
	providerRepo ProviderRepository
	merchantRepo MerchantRepository
	discountRepo DiscountRepository
	idGen        IDGenerator
}

// NewProductUseCase creates a new ProductUseCase.
func NewProductUseCase(
	productRepo ProductRepository,
	providerRepo ProviderRepository,
	merchantRepo MerchantRepository,
	discountRepo DiscountRepository,
	idGen IDGenerator,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		providerRepo: providerRepo,
		merchantRepo: merchantRepo,
		discountRepo: discountRepo,
		idGen:        idGen,
	}
}

// CreateProductInput represents input for creating a product.
type CreateProductInput struct {
	Name       string
	Code       string
	ProviderID string
	Price      string
}

// CreateProduct creates a new VAS product under an existing provider.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, authz domain.AuthContext, input CreateProductInput) (*domain.Product, error) {
	if err := authz.RequireAdmin(); err != nil {
		return nil, err
	}

	price, err := domain.ParseAmount(input.Price)
	if err != nil {
		return nil, err
	}

	if _, err := uc.providerRepo.GetByID(ctx, input.ProviderID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	product := &domain.Product{
		ID:         uc.idGen.Generate(),
		Name:       input.Name,
		Code:       input.Code,
		ProviderID: input.ProviderID,
		Price:      price,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, domain.NewOperationError("product.create", err)
	}

	return product, nil
}

// GetProduct retrieves a product by ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

// SetProductActive toggles product availability.
func (uc *ProductUseCase) SetProductActive(ctx context.Context, authz domain.AuthContext, id string, active bool) error {
	if err := authz.RequireAdmin(); err != nil {
		return err
	}

	if _, err := uc.productRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.productRepo.SetActive(ctx, id, active, time.Now().UTC()); err != nil {
		return domain.NewOperationError("product.activate", err)
	}

	return nil
}

// ListProductsInput represents input for listing products.
type ListProductsInput struct {
	Limit  int
	Offset int
}

// ListProducts lists products with pagination.
func (uc *ProductUseCase) ListProducts(ctx context.Context, input ListProductsInput) ([]*domain.Product, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.productRepo.List(ctx, limit, offset)
}

// CreateDiscountInput represents input for granting a discount.
type CreateDiscountInput struct {
	ProductID  string
	MerchantID string
	Rate       string
}

// CreateDiscount grants a merchant a percentage discount on a product.
func (uc *ProductUseCase) CreateDiscount(ctx context.Context, authz domain.AuthContext, input CreateDiscountInput) (*domain.Discount, error) {
	if err := authz.RequireAdmin(); err != nil {
		return nil, err
	}

	rate, err := domain.ParseAmount(input.Rate)
	if err != nil {
		return nil, err
	}

	if _, err := uc.productRepo.GetByID(ctx, input.ProductID); err != nil {
		return nil, err
	}

	if _, err := uc.merchantRepo.GetByID(ctx, input.MerchantID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	discount := &domain.Discount{
		ID:         uc.idGen.Generate(),
		ProductID:  input.ProductID,
		MerchantID: input.MerchantID,
		Rate:       rate,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := discount.Validate(); err != nil {
		return nil, err
	}

	if err := uc.discountRepo.Create(ctx, discount); err != nil {
		return nil, domain.NewOperationError("discount.create", err)
	}

	return discount, nil
}

// ListDiscountsByMerchant lists a merchant's discounts.
func (uc *ProductUseCase) ListDiscountsByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.Discount, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.discountRepo.ListByMerchant(ctx, merchantID, limit, offset)
}
