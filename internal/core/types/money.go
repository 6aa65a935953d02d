// Package types provides common type aliases and utilities.
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value in rupees with full precision.
// Uses decimal.Decimal to avoid floating-point errors; all tax
// arithmetic runs on this type end to end.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// RoundRupee rounds to the nearest whole rupee, half away from zero.
// This is the single rounding policy for document grand totals; the
// round-off is the signed difference from the raw value.
func RoundRupee(v Money) Money {
	return v.Round(0)
}

// FormatINR renders a value in Indian digit grouping with two decimals,
// e.g. 123456.78 -> "1,23,456.78". Display-only; never feeds arithmetic.
func FormatINR(v Money) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	n := len(intPart)
	if n <= 3 {
		b.WriteString(intPart)
	} else {
		// Last group of three, preceding groups of two.
		head := intPart[:n-3]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		b.WriteString(strings.Join(groups, ","))
		b.WriteByte(',')
		b.WriteString(intPart[n-3:])
	}
	b.WriteString(fracPart)
	return b.String()
}
