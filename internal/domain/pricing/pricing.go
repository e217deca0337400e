// Package pricing holds the pure price computations for the storefront.
// Functions here are referentially transparent: they are called on every
// render and cart mutation, so they must not touch any state.
package pricing

import (
	"github.com/shopspring/decimal"

	"boulevard/internal/domain/entity"
)

// Price returns basePrice * multiplier, the unit price of one product at a
// given weight tier. Resolving the multiplier for a tier is the catalog's
// job; an unmapped tier never reaches this function.
func Price(basePrice, multiplier decimal.Decimal) decimal.Decimal {
	return basePrice.Mul(multiplier)
}

// CartTotal returns the sum of unitPrice * quantity over all line items.
// An empty cart totals zero.
func CartTotal(items []entity.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}

	return total
}
