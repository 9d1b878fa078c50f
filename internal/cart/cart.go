// Package cart holds the shopping cart state machine: the single source of
// truth for what the current shopper intends to buy.
package cart

import (
	"errors"
	"sync"

	"github.com/petalworks/storefront/internal/catalog"
	"github.com/shopspring/decimal"
)

// ErrMixedStoreCart is returned when an item from a different store is added
// to a non-empty cart. Checkout is per store, so a cart never mixes stores.
var ErrMixedStoreCart = errors.New("cart already holds items from another store")

// Line is one product+quantity entry in a cart. UnitPrice is captured at
// add time and never refreshed from the catalog, so a mid-session price
// change cannot affect what the shopper saw when they added the item.
type Line struct {
	ProductID int64            `json:"product_id"`
	StoreID   int64            `json:"store_id"`
	Name      string           `json:"name"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Quantity  int32            `json:"quantity"`
	Image     catalog.ImageRef `json:"image"`
}

// Snapshot is a deep copy of the cart state at a specific moment, immune to
// later mutation of the cart it was taken from.
type Snapshot struct {
	Lines []Line          `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// Empty reports whether the snapshot holds no lines.
func (s Snapshot) Empty() bool {
	return len(s.Lines) == 0
}

// Cart is an explicitly owned, injectable state object. One instance exists
// per shopper session; screens share it by reference, never through a global.
// Lines keep insertion order and product IDs are unique within the cart.
//
// Callers are expected to pass valid input: quantities are validated at the
// transport boundary, not here.
type Cart struct {
	mu    sync.Mutex
	lines []Line
	total decimal.Decimal
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{total: decimal.Zero}
}

// AddItem merges the product into the cart. If a line for the product already
// exists its quantity is incremented by qty; the unit price stays the one
// captured on first add. Otherwise a new line is appended.
// Returns ErrMixedStoreCart if the cart holds items from a different store.
func (c *Cart) AddItem(product catalog.Product, storeID int64, qty int32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.lines) > 0 && c.lines[0].StoreID != storeID {
		return ErrMixedStoreCart
	}

	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity += qty
			c.recomputeTotal()
			return nil
		}
	}

	c.lines = append(c.lines, Line{
		ProductID: product.ID,
		StoreID:   storeID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  qty,
		Image:     product.Image,
	})
	c.recomputeTotal()
	return nil
}

// UpdateQuantity sets the line's quantity to exactly qty. A quantity of zero
// or less removes the line entirely. Unknown product IDs are a no-op.
func (c *Cart) UpdateQuantity(productID int64, qty int32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if qty <= 0 {
		c.removeLine(productID)
		c.recomputeTotal()
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = qty
			break
		}
	}
	c.recomputeTotal()
}

// RemoveItem removes the line for the given product. Removing an absent
// product is a no-op, not an error.
func (c *Cart) RemoveItem(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLine(productID)
	c.recomputeTotal()
}

// Clear resets the cart to an empty collection and zero total.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.total = decimal.Zero
}

// Snapshot returns a deep copy of the current lines and total.
func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return Snapshot{Lines: lines, Total: c.total}
}

// Total returns the current derived total.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Len returns the number of lines in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// removeLine drops the line for productID, preserving the order of the rest.
// Caller must hold c.mu.
func (c *Cart) removeLine(productID int64) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// recomputeTotal derives the total from the lines. Caller must hold c.mu.
// Every mutation ends here, so the total can never drift from the lines.
func (c *Cart) recomputeTotal() {
	total := decimal.Zero
	for i := range c.lines {
		total = total.Add(c.lines[i].UnitPrice.Mul(decimal.NewFromInt32(c.lines[i].Quantity)))
	}
	c.total = total
}
