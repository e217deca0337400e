package repository

import (
	"context"

	"boulevard/internal/errors"
)

// Storage sentinel errors, letting the cart store tell "nothing saved yet"
// from "saved but unreadable".
var (
	// ErrCartNotFound is returned by Load when no cart has been saved under
	// the configured key.
	ErrCartNotFound = errors.New("cart not found")

	// ErrCartCorrupt marks a stored value that does not decode into a
	// well-formed ordered line item list.
	ErrCartCorrupt = errors.New("persisted cart is corrupt")
)

// CartStorage is the durable local key-value collaborator holding the
// serialized cart under a single key. Durability is best effort: the cart
// store logs and swallows Save failures, and discards corrupt values on Load
// instead of failing startup.
type CartStorage interface {
	// Load reads and returns the serialized cart value.
	Load(ctx context.Context) ([]byte, error)

	// Save writes the full serialized cart state, replacing any prior value.
	Save(ctx context.Context, value []byte) error

	// Delete removes the stored value. Deleting an absent key is not an error.
	Delete(ctx context.Context) error
}
