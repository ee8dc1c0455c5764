package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount formats an amount with exactly two decimal digits, e.g. "59.97".
// Rounding is half away from zero, which is half-up for the non-negative amounts the store handles.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatUSD formats an amount as a dollar string like "$1,250.50".
// Uses comma as thousands separator.
func FormatUSD(amount decimal.Decimal) string {
	s := FormatAmount(amount)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot:]
	}

	var b strings.Builder
	// Pre-allocate: digits + separators + $ + sign
	b.Grow(len(s) + len(intPart)/3 + 2)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	if rem > len(intPart) {
		rem = len(intPart)
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(fracPart)

	return b.String()
}
