package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/metzakaria/vendicore/internal/adapter/http/dto"
	"github.com/metzakaria/vendicore/internal/domain"
)

// writeJSON writes a success envelope.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.Envelope{Success: true, Data: data})
}

// writeError writes an error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.Envelope{Success: false, Error: message})
}

// writeDomainError maps a use case error to a status code and writes the
// envelope. OperationError messages pass through as-is; the wrapped cause
// stays server-side.
func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, mapDomainError(err), err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrBadCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrUserDeactivated):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrMerchantNotFound),
		errors.Is(err, domain.ErrFundingNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrProviderNotFound),
		errors.Is(err, domain.ErrDiscountNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrMerchantSuspended):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrBalanceMismatch),
		errors.Is(err, domain.ErrSourceTooLong),
		errors.Is(err, domain.ErrDescriptionTooLong),
		errors.Is(err, domain.ErrInvalidMerchantName),
		errors.Is(err, domain.ErrInvalidProductName),
		errors.Is(err, domain.ErrInvalidProviderName),
		errors.Is(err, domain.ErrInvalidProductCode),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooWeak),
		errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
