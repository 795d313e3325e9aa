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

// FundingService defines the behavior needed by FundingHandler.
type FundingService interface {
	CreateFunding(ctx context.Context, authz domain.AuthContext, input usecase.CreateFundingInput) (*domain.FundingEntry, error)
	AmendFunding(ctx context.Context, authz domain.AuthContext, input usecase.AmendFundingInput) (*domain.FundingEntry, error)
	GetFunding(ctx context.Context, reference string) (*domain.FundingEntry, error)
	ListFundingsByMerchant(ctx context.Context, input usecase.ListFundingsByMerchantInput) ([]*domain.FundingEntry, error)
	FundingAuditTrail(ctx context.Context, authz domain.AuthContext, reference string) ([]*domain.AuditLog, error)
}

// FundingHandler handles funding ledger HTTP requests. The caller's auth
// context rides along into the use case, which re-checks the role even
// though the gate already did.
type FundingHandler struct {
	fundingUC FundingService
}

// NewFundingHandler creates a new FundingHandler.
func NewFundingHandler(fundingUC FundingService) *FundingHandler {
	return &FundingHandler{fundingUC: fundingUC}
}

// Create credits a merchant and records a funding entry.
func (h *FundingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFundingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	authz := middleware.AuthFromContext(r.Context())

	entry, err := h.fundingUC.CreateFunding(r.Context(), authz, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.FundingFromDomain(entry))
}

// Amend corrects an existing funding entry.
func (h *FundingHandler) Amend(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing funding reference")
		return
	}

	var req dto.AmendFundingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	authz := middleware.AuthFromContext(r.Context())

	entry, err := h.fundingUC.AmendFunding(r.Context(), authz, req.ToUseCaseInput(reference))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FundingFromDomain(entry))
}

// Get retrieves a funding entry by reference.
func (h *FundingHandler) Get(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing funding reference")
		return
	}

	entry, err := h.fundingUC.GetFunding(r.Context(), reference)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FundingFromDomain(entry))
}

// ListByMerchant lists funding entries for a merchant.
func (h *FundingHandler) ListByMerchant(w http.ResponseWriter, r *http.Request) {
	merchantID := chi.URLParam(r, "id")
	if merchantID == "" {
		writeError(w, http.StatusBadRequest, "missing merchant ID")
		return
	}

	entries, err := h.fundingUC.ListFundingsByMerchant(r.Context(), usecase.ListFundingsByMerchantInput{
		MerchantID: merchantID,
		Limit:      parseIntQuery(r, "limit", 20),
		Offset:     parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FundingsFromDomain(entries))
}

// AuditTrail returns the audit trail of a funding entry.
func (h *FundingHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing funding reference")
		return
	}

	authz := middleware.AuthFromContext(r.Context())

	logs, err := h.fundingUC.FundingAuditTrail(r.Context(), authz, reference)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
