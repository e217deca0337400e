// Package entity contains the core business objects of the project.
package entity

import "github.com/shopspring/decimal"

// RoastLevel describes how dark a coffee is roasted.
type RoastLevel string

const (
	RoastLight  RoastLevel = "light"
	RoastMedium RoastLevel = "medium"
	RoastDark   RoastLevel = "dark"
)

// Category distinguishes plain coffee from the spiced blend.
type Category string

const (
	CategoryPlain  Category = "plain"
	CategorySpiced Category = "spiced"
)

// Product is one catalog entry. Products are defined once at startup from
// static configuration and never mutated afterwards.
type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	RoastLevel RoastLevel      `json:"roastLevel"`
	Category   Category        `json:"category"`
	Image      string          `json:"image"`
	BasePrice  decimal.Decimal `json:"basePrice"` // Unit price for the base weight tier.
}
