// Package store provides an interface for order storage operations.
package store

import (
	"context"

	"github.com/petalworks/storefront/internal/order"
)

// OrderStore is the document-store contract orders are persisted against.
// Records are keyed by their order ID and written exactly once.
type OrderStore interface {
	// Put writes the order record under its ID.
	// Returns an error if the record cannot be written.
	Put(ctx context.Context, o *order.Order) error

	// FindByID retrieves a single order by its identifier.
	// Returns order.ErrNotFound if no order exists with the given ID.
	FindByID(ctx context.Context, id string) (*order.Order, error)
}
