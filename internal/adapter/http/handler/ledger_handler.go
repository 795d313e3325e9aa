package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/metzakaria/vendicore/internal/adapter/http/dto"
	"github.com/metzakaria/vendicore/internal/usecase"
)

// ConsistencyService defines the behavior needed by LedgerHandler.
type ConsistencyService interface {
	MerchantDrift(ctx context.Context, merchantID string) (*usecase.DriftResult, error)
}

// LedgerHandler exposes the merchant drift report. Amendments re-state an
// entry without touching the merchant's running total, so this is where the
// accumulated difference becomes visible.
type LedgerHandler struct {
	consistencyUC ConsistencyService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(consistencyUC ConsistencyService) *LedgerHandler {
	return &LedgerHandler{consistencyUC: consistencyUC}
}

// Drift reports the drift between a merchant's live balance and the sum of
// its funding entries.
func (h *LedgerHandler) Drift(w http.ResponseWriter, r *http.Request) {
	merchantID := chi.URLParam(r, "merchantID")
	if merchantID == "" {
		writeError(w, http.StatusBadRequest, "missing merchant ID")
		return
	}

	result, err := h.consistencyUC.MerchantDrift(r.Context(), merchantID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DriftFromResult(result))
}
