package entity

import "github.com/shopspring/decimal"

// LineItem is one product+weight+quantity entry in the cart.
//
// UnitPrice is computed once when the item is first added and stays frozen on
// the item: merging more quantity onto the same (product id, weight) key never
// recomputes it, even if the catalog price changes mid-session. The JSON shape
// matches the value the storefront kept under its localStorage key, so carts
// persisted by earlier deployments still rehydrate.
type LineItem struct {
	Product   Product         `json:"product"`
	Weight    WeightTier      `json:"weight"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
}

// LineTotal returns UnitPrice * Quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// SameKey reports whether other merges into this line. The identity key for
// merge purposes is (product id, weight).
func (li LineItem) SameKey(other LineItem) bool {
	return li.Product.ID == other.Product.ID && li.Weight == other.Weight
}
