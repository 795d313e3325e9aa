package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/metzakaria/vendicore/internal/adapter/http/dto"
	"github.com/metzakaria/vendicore/internal/adapter/http/middleware"
	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/usecase"
)

// ProductService defines the behavior needed by ProductHandler.
type ProductService interface {
	CreateProduct(ctx context.Context, authz domain.AuthContext, input usecase.CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SetProductActive(ctx context.Context, authz domain.AuthContext, id string, active bool) error
	ListProducts(ctx context.Context, input usecase.ListProductsInput) ([]*domain.Product, error)
	CreateDiscount(ctx context.Context, authz domain.AuthContext, input usecase.CreateDiscountInput) (*domain.Discount, error)
	ListDiscountsByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.Discount, error)
}

// ProductHandler handles VAS product and discount HTTP requests.
type ProductHandler struct {
	productUC ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productUC ProductService) *ProductHandler {
	return &ProductHandler{productUC: productUC}
}

// Create creates a new product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	authz := middleware.AuthFromContext(r.Context())

	product, err := h.productUC.CreateProduct(r.Context(), authz, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ProductFromDomain(product))
}

// Get retrieves a product by ID.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing product ID")
		return
	}

	product, err := h.productUC.GetProduct(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductFromDomain(product))
}

// SetActive toggles product availability.
func (h *ProductHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing product ID")
		return
	}

	var req dto.SetProductActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	authz := middleware.AuthFromContext(r.Context())

	if err := h.productUC.SetProductActive(r.Context(), authz, id, req.Active); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "active": req.Active})
}

// List lists products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productUC.ListProducts(r.Context(), usecase.ListProductsInput{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductsFromDomain(products))
}

// CreateDiscount grants a merchant a discount on a product.
func (h *ProductHandler) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	authz := middleware.AuthFromContext(r.Context())

	discount, err := h.productUC.CreateDiscount(r.Context(), authz, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.DiscountFromDomain(discount))
}

// ListDiscountsByMerchant lists discounts granted to a merchant.
func (h *ProductHandler) ListDiscountsByMerchant(w http.ResponseWriter, r *http.Request) {
	merchantID := chi.URLParam(r, "id")
	if merchantID == "" {
		writeError(w, http.StatusBadRequest, "missing merchant ID")
		return
	}

	discounts, err := h.productUC.ListDiscountsByMerchant(
		r.Context(),
		merchantID,
		parseIntQuery(r, "limit", 20),
		parseIntQuery(r, "offset", 0),
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DiscountsFromDomain(discounts))
}
