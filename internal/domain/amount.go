// internal/domain/amount.go
package domain

import "github.com/shopspring/decimal"

// AmountScale is the number of fractional digits stored by the NUMERIC(20,4) money columns.
const AmountScale = 4

// maxExponentSpan bounds the decimal exponent before any arithmetic, so inputs like
// 1e-20000000 are rejected without being expanded.
const maxExponentSpan = 20

// MaxAmount is the exclusive upper bound of a money value: NUMERIC(20,4) keeps 16 integer digits.
var MaxAmount = decimal.New(1, 20-AmountScale)

// ValidAmount reports whether d is a positive money value that the datastore can hold
// exactly, i.e. below MaxAmount and with at most AmountScale fractional digits.
func ValidAmount(d decimal.Decimal) bool {
	if exp := d.Exponent(); exp < -maxExponentSpan || exp > maxExponentSpan {
		return false
	}
	if !d.IsPositive() || !d.LessThan(MaxAmount) {
		return false
	}
	return d.Equal(d.Truncate(AmountScale))
}
