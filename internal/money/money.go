package money

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-renderer/internal/model"
)

// Zero is decimal zero
var Zero = decimal.Zero

// FromInt creates decimal from int
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// FromFloat creates decimal from float with rounding
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// LineTotal computes quantity * rate, rounded to 2 places. This is the only
// way a line amount is ever derived; precomputed totals are never trusted.
func LineTotal(quantity, rate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(rate).Round(2)
}

// Percentage computes amount * (ratePercent / 100), rounded to 2 places.
func Percentage(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return amount.Mul(ratePercent).Div(decimal.NewFromInt(100)).Round(2)
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// Format renders an amount in the jurisdiction's currency style.
//
//	JAPAN:           "¥ 12,345"    (no decimals, rounded half away from zero)
//	INDIA / default: "₹ 12,345.00" (two decimals)
//
// No conversion happens here; the amount is assumed already denominated in
// the jurisdiction's currency.
func Format(amount decimal.Decimal, j model.Jurisdiction) string {
	if j == model.JurisdictionJapan {
		return "¥ " + group(amount.StringFixed(0))
	}
	return "₹ " + group(amount.StringFixed(2))
}

// Symbol returns the currency symbol for a jurisdiction.
func Symbol(j model.Jurisdiction) string {
	if j == model.JurisdictionJapan {
		return "¥"
	}
	return "₹"
}

// group inserts comma thousands separators into the integer part of a
// fixed-point numeric string, e.g. "1234.50" -> "1,234.50".
func group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	n := len(intPart)
	if n <= 3 {
		return sign + intPart + frac
	}

	var b strings.Builder
	b.Grow(n + n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	return sign + b.String() + frac
}
