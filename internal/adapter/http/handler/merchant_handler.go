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

// MerchantService defines the behavior needed by MerchantHandler.
type MerchantService interface {
	CreateMerchant(ctx context.Context, authz domain.AuthContext, input usecase.CreateMerchantInput) (*domain.Merchant, error)
	GetMerchant(ctx context.Context, id string) (*domain.Merchant, error)
	SetMerchantStatus(ctx context.Context, authz domain.AuthContext, id string, status domain.MerchantStatus) error
	ListMerchants(ctx context.Context, input usecase.ListMerchantsInput) ([]*domain.Merchant, error)
}

// MerchantHandler handles merchant HTTP requests.
type MerchantHandler struct {
	merchantUC MerchantService
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(merchantUC MerchantService) *MerchantHandler {
	return &MerchantHandler{merchantUC: merchantUC}
}

// Create registers a new merchant.
func (h *MerchantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMerchantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	authz := middleware.AuthFromContext(r.Context())

	merchant, err := h.merchantUC.CreateMerchant(r.Context(), authz, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MerchantFromDomain(merchant))
}

// Get retrieves a merchant by ID.
func (h *MerchantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing merchant ID")
		return
	}

	merchant, err := h.merchantUC.GetMerchant(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MerchantFromDomain(merchant))
}

// UpdateStatus suspends or reactivates a merchant.
func (h *MerchantHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing merchant ID")
		return
	}

	var req dto.UpdateMerchantStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := domain.MerchantStatus(req.Status)
	if status != domain.MerchantStatusActive && status != domain.MerchantStatusSuspended {
		writeError(w, http.StatusBadRequest, "invalid merchant status")
		return
	}

	authz := middleware.AuthFromContext(r.Context())

	if err := h.merchantUC.SetMerchantStatus(r.Context(), authz, id, status); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": req.Status})
}

// List lists merchants.
func (h *MerchantHandler) List(w http.ResponseWriter, r *http.Request) {
	merchants, err := h.merchantUC.ListMerchants(r.Context(), usecase.ListMerchantsInput{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MerchantsFromDomain(merchants))
}
