// Package decimal converts the text amounts of a parsed document into
// exact decimals. Documents keep amounts as text; parsing happens here, at
// the consuming boundary.
package decimal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/ubl-reader/internal/model"
)

// Zero is decimal zero
var Zero = decimal.Zero

// DefaultTolerance is the difference below which two COP amounts are equal.
// DIAN accepts rounding differences up to one peso.
var DefaultTolerance = decimal.NewFromInt(1)

// Parse reads an amount written either plainly ("12600.06") or with
// thousands separators in either convention ("12.600,06", "12,600.06").
// When only one separator kind appears it is thousands grouping if it
// repeats, otherwise the decimal mark.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, fmt.Errorf("empty amount")
	}

	normalized := normalize(s)
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// 12.600,06
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		// 12,600.06
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return strings.ReplaceAll(s, ",", "")
		}
		return strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	default:
		return s
	}
}

// FromMeasured parses the text of an amount or quantity
func FromMeasured(mv model.MeasuredValue) (decimal.Decimal, error) {
	return Parse(mv.Text)
}

// Mul multiplies two decimals, rounds to 2 places
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b).Round(2)
}

// Div divides a by b, rounds to 2 places
func Div(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return Zero
	}
	return a.Div(b).Round(2)
}

// CalculatePercentage computes: amount * (percentage/100), rounded to 2 places
func CalculatePercentage(amount decimal.Decimal, percentage decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return amount.Mul(percentage).Div(hundred).Round(2)
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// WithinTolerance reports whether |a-b| <= tolerance
func WithinTolerance(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}
