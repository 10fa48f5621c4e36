package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for amounts that are not a finite,
// non-negative decimal.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a user-entered amount. Both "1234.56" and the Brazilian
// "1.234,56" forms are accepted; negatives and non-numeric input are rejected.
// The result is rounded half-up to centavos, the precision amounts are
// stored with.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !ValidAmount(d) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d.Round(2), nil
}

// ValidAmount reports whether d can be stored as an amount or target.
func ValidAmount(d decimal.Decimal) bool {
	return !d.IsNegative()
}

// FormatBRL renders d as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + frac
	if neg {
		return "-" + out
	}
	return out
}

func init() {
	// Amounts are stored and served as JSON numbers, matching the layout
	// written by earlier versions of the dashboard.
	decimal.MarshalJSONWithoutQuotes = true
}
