package domain

import (
	"errors"
	"fmt"
)

var (
	// Merchant errors
	ErrMerchantNotFound  = errors.New("merchant not found")
	ErrMerchantSuspended = errors.New("merchant is suspended")

	// Funding errors
	ErrFundingNotFound = errors.New("funding entry not found")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrBalanceMismatch = errors.New("balance after does not equal balance before plus amount")

	// Catalog errors
	ErrProductNotFound  = errors.New("product not found")
	ErrProviderNotFound = errors.New("provider account not found")
	ErrDiscountNotFound = errors.New("discount not found")
)

// OperationError wraps an unexpected persistence failure. Only the message of
// the underlying error crosses the service boundary, never stack detail.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError wraps err as an OperationError for operation op.
func NewOperationError(op string, err error) error {
	if err == nil {
		return nil
	}

	return &OperationError{Op: op, Err: err}
}
