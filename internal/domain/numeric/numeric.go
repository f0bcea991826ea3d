// Package numeric bounds untrusted decimals to what the ledger columns hold.
// Every check here looks only at the coefficient size and exponent, so it is
// safe to run on arbitrary input before any arithmetic.
package numeric

import "github.com/shopspring/decimal"

// Column is a fixed-point column: Precision significant digits, Scale of them
// after the point.
type Column struct {
	Precision int32
	Scale     int32
}

var (
	// Money holds amounts, collateral, payments and fees. Fifteen significant
	// digits round-trip exactly through MySQL decimal(20,6) and through
	// SQLite's REAL-backed numeric storage.
	Money = Column{Precision: 15, Scale: 6}
	// Rate holds interest and penalty rates (decimal(10,4)).
	Rate = Column{Precision: 10, Scale: 4}
)

// maxCoefficientBits caps the coefficient before counting its digits;
// 10^38 < 2^127.
const maxCoefficientBits = 127

// Sane rejects decimals whose coefficient or exponent is far outside any
// column, e.g. 1e-50000000. It is the coarse gate for request decoding.
func Sane(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < -18 || exp > 18 {
		return false
	}
	return d.Coefficient().BitLen() <= maxCoefficientBits
}

// Fits reports whether d is stored by c without rounding or overflow: at most
// Scale fractional digits and at most Precision-Scale integer digits.
func (c Column) Fits(d decimal.Decimal) bool {
	if !Sane(d) {
		return false
	}
	if d.Exponent() < -c.Scale {
		// trailing zeros past the scale are harmless
		t := d.Truncate(c.Scale)
		if !t.Equal(d) {
			return false
		}
		d = t
	}
	exp := d.Exponent()
	if d.IsZero() {
		return true
	}
	return digits(d)+exp <= c.Precision-c.Scale
}

// digits counts the coefficient's decimal digits. decimal.NumDigits goes
// through float64 logarithms and is off by one near powers of ten.
func digits(d decimal.Decimal) int32 {
	c := d.Coefficient()
	return int32(len(c.Abs(c).String()))
}

// Format renders d for logs; values failing Sane are not expanded.
func Format(d decimal.Decimal) string {
	if !Sane(d) {
		return "out-of-range"
	}
	return d.String()
}
