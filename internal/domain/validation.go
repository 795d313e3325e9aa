package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidMerchantName = errors.New("invalid merchant name")
	ErrInvalidProductName  = errors.New("invalid product name")
	ErrInvalidProviderName = errors.New("invalid provider name")
	ErrInvalidProductCode  = errors.New("invalid product code")
	ErrAmountTooLarge      = errors.New("amount exceeds maximum allowed")
	ErrSourceTooLong       = errors.New("funding source exceeds maximum length")
	ErrDescriptionTooLong  = errors.New("description exceeds maximum length")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrPasswordTooWeak     = errors.New("password does not meet requirements")
)

// Validation constants
const (
	MaxMerchantNameLength  = 255
	MinMerchantNameLength  = 1
	MaxFundingSourceLength = 64
	MaxDescriptionLength   = 1024
	MaxFundingAmount       = "1000000000" // 1 billion
	MinPasswordLength      = 8
	MaxPasswordLength      = 128
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var productCodeRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]{1,31}$`)

// ParseAmount parses a wire amount into a positive decimal. Amounts travel as
// strings end to end; they are never represented as floats.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}

	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}

	return amount, nil
}

// ValidateAmount validates a funding amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxFundingAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxFundingAmount)
	}

	return nil
}

// ValidateMerchantName validates a merchant name.
func ValidateMerchantName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinMerchantNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidMerchantName)
	}

	if len(name) > MaxMerchantNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidMerchantName, MaxMerchantNameLength)
	}

	return nil
}

// ValidateFundingSource validates the free-text provenance tag on a funding entry.
func ValidateFundingSource(source string) error {
	if len(source) > MaxFundingSourceLength {
		return fmt.Errorf("%w: maximum is %d characters", ErrSourceTooLong, MaxFundingSourceLength)
	}

	return nil
}

// ValidateDescription validates a funding description.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: maximum is %d characters", ErrDescriptionTooLong, MaxDescriptionLength)
	}

	return nil
}

// ValidateProductCode validates a VAS product code.
func ValidateProductCode(code string) error {
	if !productCodeRegex.MatchString(code) {
		return fmt.Errorf("%w: %q", ErrInvalidProductCode, code)
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasUpper || !hasLower || !hasNumber {
		return fmt.Errorf("%w: must contain uppercase, lowercase, and numbers", ErrPasswordTooWeak)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
