// Package money converts between decimal amount strings and integer cents.
// All ledger amounts are stored as non-negative cents; the sign is applied
// at aggregation time from the transaction kind.
package money

import (
	"fmt"
	"strings"
	"unicode"

	apperrors "tally/internal/errors"
)

// ParseAmount converts a decimal string to cents with half-up rounding on
// the third decimal place. It accepts both dot and comma separators and
// rejects signs: ledger amounts are sign-agnostic by contract.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, apperrors.ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, apperrors.ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, apperrors.ErrInvalidAmount
		}
	}

	var iv int64
	for _, r := range intPart {
		d := int64(r - '0')
		if iv > ((1<<63-1)-d)/10 {
			return 0, apperrors.ErrInvalidAmount
		}
		iv = iv*10 + d
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, apperrors.ErrInvalidAmount
	}

	cents := iv * 100
	if len(fracPart) > 0 {
		cents += int64(fracPart[0]-'0') * 10
	}
	if len(fracPart) > 1 {
		cents += int64(fracPart[1] - '0')
	}
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		cents++
	}
	return cents, nil
}

// FromFloat converts a float amount (e.g. a parsed receipt value) to cents
// with half-up rounding.
func FromFloat(v float64) int64 {
	if v < 0 {
		v = -v
	}
	return int64(v*100 + 0.5)
}

// Format renders cents as a plain decimal string with two places.
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
