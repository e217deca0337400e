package entity

import "github.com/shopspring/decimal"

// WeightTier identifies one of the fixed weight options a product can be
// ordered in. The set of valid tiers and their price multipliers comes from
// the catalog configuration; the label doubles as the wire value.
type WeightTier string

// WeightOption binds a tier to its price multiplier. Multipliers are >= 1,
// relative to the product's base price.
type WeightOption struct {
	Tier       WeightTier      `json:"tier"`
	Multiplier decimal.Decimal `json:"multiplier"`
}
