package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an immutable monetary amount in the store's single currency.
type Money struct {
	amount decimal.Decimal
}

// Zero returns a Money worth exactly zero.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// FromFloat builds a Money from a float64 amount.
func FromFloat(f float64) Money {
	return Money{amount: decimal.NewFromFloat(f)}
}

// FromDecimal builds a Money from a decimal amount.
func FromDecimal(d decimal.Decimal) Money {
	return Money{amount: d}
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String renders the amount with two decimal places, e.g. "12.50".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Mul returns the amount scaled by a factor, e.g. a VAT rate.
func (m Money) Mul(factor float64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromFloat(factor))}
}

// WithinTolerance reports whether the absolute difference between two
// amounts does not exceed tolerance.
func (m Money) WithinTolerance(other Money, tolerance float64) bool {
	diff := m.amount.Sub(other.amount).Abs()
	return diff.Cmp(decimal.NewFromFloat(tolerance)) <= 0
}

// Normalize turns raw, locale-formatted price text into a Money value.
//
// Currency symbols, whitespace and other noise are stripped so that only
// digits, '.', ',' and '-' remain. When both ',' and '.' survive, the comma
// is treated as a thousands separator and removed ("$1,234.56" -> 1234.56);
// otherwise the first comma becomes the decimal mark ("12,50 kr" -> 12.50).
// A comma-only value like "1,234" therefore normalizes to 1.234 rather than
// 1234 - the scraped pages never emit that shape, so true locale handling is
// intentionally not attempted.
//
// Text that fails to parse yields exactly zero instead of an error. A cell
// that is empty mid page-transition must not abort a batch comparison; the
// zero surfaces as a visible mismatch against a non-zero reference instead.
func Normalize(raw string) Money {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			return r
		}
		return -1
	}, raw)

	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Zero()
	}

	return Money{amount: d}
}
