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

// ProviderService defines the behavior needed by ProviderHandler.
type ProviderService interface {
	CreateProvider(ctx context.Context, authz domain.AuthContext, input usecase.CreateProviderInput) (*domain.ProviderAccount, error)
	GetProvider(ctx context.Context, id string) (*domain.ProviderAccount, error)
	ListProviders(ctx context.Context, limit, offset int) ([]*domain.ProviderAccount, error)
}

// ProviderHandler handles provider account HTTP requests.
type ProviderHandler struct {
	providerUC ProviderService
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(providerUC ProviderService) *ProviderHandler {
	return &ProviderHandler{providerUC: providerUC}
}

// Create registers a provider account.
func (h *ProviderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	authz := middleware.AuthFromContext(r.Context())

	provider, err := h.providerUC.CreateProvider(r.Context(), authz, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ProviderFromDomain(provider))
}

// Get retrieves a provider account by ID.
func (h *ProviderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing provider ID")
		return
	}

	provider, err := h.providerUC.GetProvider(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProviderFromDomain(provider))
}

// List lists provider accounts.
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	providers, err := h.providerUC.ListProviders(
		r.Context(),
		parseIntQuery(r, "limit", 20),
		parseIntQuery(r, "offset", 0),
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProvidersFromDomain(providers))
}
