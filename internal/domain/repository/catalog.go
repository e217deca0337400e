// Package repository defines the persistence and data ports of the domain.
package repository

import (
	"github.com/shopspring/decimal"

	"boulevard/internal/domain/entity"
)

// Catalog exposes the immutable product list and the weight tier multiplier
// table. Implementations load once at startup and are safe for concurrent
// reads.
type Catalog interface {
	// Products returns every product, in catalog order.
	Products() []entity.Product

	// ProductByID looks up a product by its stable identifier.
	ProductByID(id string) (entity.Product, bool)

	// WeightTiers returns the fixed ordered set of weight options.
	WeightTiers() []entity.WeightOption

	// Multiplier resolves the price multiplier for a tier. The second return
	// is false for an unmapped tier; callers decide the failure policy,
	// lookups never default silently.
	Multiplier(tier entity.WeightTier) (decimal.Decimal, bool)
}
