package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		want        string
		expectError error
	}{
		{name: "whole", raw: "50", want: "50"},
		{name: "cents", raw: "50.25", want: "50.25"},
		{name: "trimmed", raw: " 10.00 ", want: "10"},
		{name: "zero", raw: "0", expectError: ErrInvalidAmount},
		{name: "negative", raw: "-5", expectError: ErrInvalidAmount},
		{name: "not a number", raw: "fifty", expectError: ErrInvalidAmount},
		{name: "empty", raw: "", expectError: ErrInvalidAmount},
		{name: "too large", raw: "1000000001", expectError: ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Errorf("expected %v, got %v", tt.expectError, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestValidateFundingSource(t *testing.T) {
	if err := ValidateFundingSource("manual-funding"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	long := strings.Repeat("x", MaxFundingSourceLength+1)
	if err := ValidateFundingSource(long); !errors.Is(err, ErrSourceTooLong) {
		t.Errorf("expected ErrSourceTooLong, got %v", err)
	}
}

func TestValidateMerchantName(t *testing.T) {
	if err := ValidateMerchantName("Acme Stores"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateMerchantName("  "); !errors.Is(err, ErrInvalidMerchantName) {
		t.Errorf("expected ErrInvalidMerchantName, got %v", err)
	}

	if err := ValidateMerchantName(strings.Repeat("a", 256)); !errors.Is(err, ErrInvalidMerchantName) {
		t.Errorf("expected ErrInvalidMerchantName, got %v", err)
	}
}

func TestValidateProductCode(t *testing.T) {
	valid := []string{"AIRTIME", "DATA_5GB", "TV-BASIC", "A1"}
	for _, code := range valid {
		if err := ValidateProductCode(code); err != nil {
			t.Errorf("code %q: unexpected error: %v", code, err)
		}
	}

	invalid := []string{"", "a", "lowercase", "_LEADING", "WAY TOO SPACED"}
	for _, code := range invalid {
		if err := ValidateProductCode(code); err == nil {
			t.Errorf("code %q: expected error", code)
		}
	}
}
