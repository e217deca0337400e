// Package usecase defines the application use case interfaces consumed by
// the delivery layer.
package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"boulevard/internal/domain/entity"
)

// CartUsecase is the cart state machine: an ordered line item sequence with
// merge-on-add semantics, exposed only through these operations. Every
// successful mutation is persisted to durable storage; persistence failures
// degrade silently and the in-memory cart stays authoritative.
type CartUsecase interface {
	// Add puts quantity units of a product at a weight tier into the cart.
	// If a line with the same (product id, weight) key exists its quantity
	// grows and its unit price stays frozen; otherwise a new line is appended
	// priced at basePrice * multiplier(weight).
	Add(ctx context.Context, productID string, weight entity.WeightTier, quantity int) error

	// UpdateQuantity replaces the quantity of the line at index. A value <= 0
	// removes the line instead.
	UpdateQuantity(ctx context.Context, index, newQuantity int) error

	// Remove deletes the line at index; later lines shift down, so callers
	// must not cache indices across removals.
	Remove(ctx context.Context, index int) error

	// Clear empties the cart. Used after a confirmed successful submission.
	Clear(ctx context.Context) error

	// Snapshot returns a read-only copy of the cart for rendering and
	// serialization.
	Snapshot() []entity.LineItem

	// Total returns the current cart total.
	Total() decimal.Decimal
}
