package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// leadingNumber returns the longest numeric prefix of s (optional sign, digits,
// and when allowFraction is set one '.' followed by digits).
func leadingNumber(s string, allowFraction bool) string {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if allowFraction && end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && s[frac] >= '0' && s[frac] <= '9' {
			frac++
		}
		if frac > end+1 {
			digits += frac - end - 1
			end = frac
		}
	}
	if digits == 0 {
		return ""
	}
	return s[:end]
}

// ParseDecimal parses a price attribute such as "19.99" or "19,99".
// Trailing garbage is ignored. Empty, malformed and negative input yield zero.
func ParseDecimal(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.Replace(s, ",", ".", 1)

	num := leadingNumber(s, true)
	if num == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(num, "+"))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseInt parses the integer prefix of raw ("3", "3.7", "12abc").
// Returns def when no digits are found; out of range values saturate.
func ParseInt(raw string, def int) int {
	num := leadingNumber(strings.TrimSpace(raw), false)
	if num == "" {
		return def
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		// Digit runs beyond int saturate, so an absurd quantity still clamps to stock
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			if strings.HasPrefix(num, "-") {
				return math.MinInt
			}
			return math.MaxInt
		}
		return def
	}
	return n
}

// ParseStock parses a stock attribute; malformed or negative values are zero
func ParseStock(raw string) int {
	n := ParseInt(raw, 0)
	if n < 0 {
		return 0
	}
	return n
}
