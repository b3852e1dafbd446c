package money

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Monetary amounts travel as decimal strings ("10.00") and are converted to
// integer cents for arithmetic, so totals never go through floats.

var (
	ErrMalformed = errors.New("malformed decimal amount")
	ErrNegative  = errors.New("amount must not be negative")
	ErrTooLarge  = errors.New("amount exceeds the representable range")
)

// Parse converts a decimal string with at most two fraction digits to cents.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMalformed
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}

	if whole == "" && frac == "" {
		return 0, ErrMalformed
	}
	if len(frac) > 2 {
		return 0, ErrMalformed
	}
	if whole == "" {
		whole = "0"
	}
	for frac != "" && len(frac) < 2 {
		frac += "0"
	}
	if frac == "" {
		frac = "00"
	}

	var cents int64
	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return 0, ErrMalformed
		}
		d := int64(r - '0')
		if cents > (math.MaxInt64-d)/10 {
			return 0, ErrTooLarge
		}
		cents = cents*10 + d
	}

	if neg {
		if cents != 0 {
			return 0, ErrNegative
		}
	}

	return cents, nil
}

// Format renders cents back to a two-decimal string.
func Format(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// Add sums two decimal strings.
func Add(a, b string) (string, error) {
	ca, err := Parse(a)
	if err != nil {
		return "", fmt.Errorf("left operand: %w", err)
	}
	cb, err := Parse(b)
	if err != nil {
		return "", fmt.Errorf("right operand: %w", err)
	}
	if ca > math.MaxInt64-cb {
		return "", ErrTooLarge
	}
	return Format(ca + cb), nil
}

// Mul multiplies a decimal string by an integer quantity.
func Mul(amount string, qty int) (string, error) {
	if qty < 0 {
		return "", ErrNegative
	}
	c, err := Parse(amount)
	if err != nil {
		return "", err
	}
	if qty > 0 && c > math.MaxInt64/int64(qty) {
		return "", ErrTooLarge
	}
	return Format(c * int64(qty)), nil
}

// Zero is the canonical zero amount.
func Zero() string {
	return "0.00"
}
