// Package money parses user-entered transfer amounts and formats amounts
// for display.
package money

import (
	"errors"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for amounts that are not a positive, finite
// number.
var ErrInvalidAmount = errors.New("amount must be a positive number")

// ParseAmount parses a transfer amount as typed by a user. Both "12.5" and
// "12,5" are accepted. A comma is only read as a decimal separator when it
// is the only separator and at most two digits follow it, so "1,000" is
// rejected rather than read as 1. Empty, non-numeric, zero and negative
// inputs are rejected. decimal.Decimal cannot hold NaN or infinities, so
// "NaN" and "Inf" fail to parse.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Contains(s, ",") {
		whole, frac, _ := strings.Cut(s, ",")
		if strings.Contains(whole, ".") || strings.ContainsAny(frac, ".,") || whole == "" || frac == "" || len(frac) > 2 {
			return decimal.Zero, ErrInvalidAmount
		}
		s = whole + "." + frac
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Format renders amount with two decimals, thousands separators and the
// currency code, e.g. "1,234.50 EGP". An empty currency omits the suffix.
func Format(amount decimal.Decimal, currency string) string {
	whole, frac, _ := strings.Cut(amount.StringFixed(2), ".")
	sign := ""
	if w, ok := strings.CutPrefix(whole, "-"); ok {
		sign, whole = "-", w
	}
	n, _ := new(big.Int).SetString(whole, 10)
	s := sign + humanize.BigComma(n) + "." + frac
	if currency == "" {
		return s
	}
	return s + " " + currency
}
