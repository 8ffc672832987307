// Package pricing implements the valuation rules for quotes and their
// line items. All functions are pure.
package pricing

import (
	"github.com/shopspring/decimal"
)

// DiscountKind determines how a line item discount is applied.
type DiscountKind string

const (
	// DiscountPercentage reduces the subtotal by discount percent.
	DiscountPercentage DiscountKind = "percentage"
	// DiscountFixed subtracts the discount as a currency amount.
	DiscountFixed DiscountKind = "fixed"
)

// Valid reports whether the discount kind is known.
func (k DiscountKind) Valid() bool {
	return k == DiscountPercentage || k == DiscountFixed
}

var oneHundred = decimal.NewFromInt(100)

// ItemTotal computes the total of a single line item.
//
// The subtotal is quantity times the unit price. A percentage discount
// reduces it by discount percent, a fixed discount subtracts the
// discount directly. The result is not clamped, a discount larger
// than the subtotal yields a negative total.
func ItemTotal(quantity uint64, unitPrice, discount decimal.Decimal, kind DiscountKind) decimal.Decimal {
	subtotal := unitPrice.Mul(decimal.NewFromUint64(quantity))

	if kind == DiscountPercentage {
		return subtotal.Sub(subtotal.Mul(discount).Div(oneHundred))
	}

	return subtotal.Sub(discount)
}

// QuoteTotal computes the total of a quote from the totals of its
// current line items and the freight amount.
func QuoteTotal(itemTotals []decimal.Decimal, freight decimal.Decimal) decimal.Decimal {
	total := freight

	for _, t := range itemTotals {
		total = total.Add(t)
	}

	return total
}
