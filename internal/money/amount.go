// Package money parses monetary amounts out of document text and compares
// them under an absolute tolerance. Arithmetic goes through
// shopspring/decimal so separator normalization never picks up binary
// float artifacts.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultTolerance is the absolute tolerance, in currency units, used for
// financial sum checks unless a caller overrides it.
const DefaultTolerance = 0.02

var symbolStripper = strings.NewReplacer(
	"€", "", "$", "", "£", "", "¥", "", "₹", "",
	" ", "", "\t", "", " ", "",
)

// ParseAmount converts a numeric-looking token into a value, normalizing
// locale-specific separators and stripping currency symbols.
//
// When both "." and "," appear, the later-occurring one is the decimal
// separator and the other is a thousands separator. A lone comma is a
// decimal separator only when followed by exactly 1-2 digits ("123,45"),
// otherwise a thousands separator ("1,234"). Returns nil for anything
// that does not normalize to a finite number, including empty input.
func ParseAmount(text string) *float64 {
	cleaned := symbolStripper.Replace(strings.TrimSpace(text))
	if cleaned == "" {
		return nil
	}

	comma := strings.LastIndex(cleaned, ",")
	dot := strings.LastIndex(cleaned, ".")

	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			// European style: 1.234,56
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			// US style: 1,234.56
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case comma >= 0:
		parts := strings.Split(cleaned, ",")
		if len(parts) == 2 && len(parts[1]) >= 1 && len(parts[1]) <= 2 {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	v, _ := d.Float64()
	return &v
}

// WithinTolerance reports whether a and b are equal within tolerance.
// Missing data never matches: a nil operand is always false.
func WithinTolerance(a, b *float64, tolerance float64) bool {
	if a == nil || b == nil {
		return false
	}
	diff := decimal.NewFromFloat(*a).Sub(decimal.NewFromFloat(*b)).Abs()
	return diff.LessThanOrEqual(decimal.NewFromFloat(tolerance))
}

// Sum adds up line totals without accumulating float error.
func Sum(values []float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Float64()
	return f
}

// Ptr returns a pointer to v. Convenience for building optional fields.
func Ptr(v float64) *float64 {
	return &v
}
