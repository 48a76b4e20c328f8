// internal/shop/cart.go
//
// Cart arithmetic and order creation.
// Responsibilities:
//   - Add/remove item copies with quantity validation.
//   - Keep Cart.Total in sync with Cart.Items.
//   - Snapshot a cart into an Order.
//
// Submitting an order leaves the cart as it is.

package shop

import (
	"errors"
	"time"
)

// ErrInvalidQuantity is returned for non-positive quantities.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// DefaultCatalog seeds an empty store.
var DefaultCatalog = []Item{
	{ID: 1, Name: "Round Widget", Price: Cents(299), Description: "A widget that is round"},
	{ID: 2, Name: "Square Widget", Price: Cents(199), Description: "A widget that is square"},
}

// NewCart returns an empty cart for userID.
func NewCart(userID int64) *Cart {
	return &Cart{ID: userID, Items: []Item{}}
}

// Add appends quantity copies of item.
func (c *Cart) Add(item Item, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := 0; i < quantity; i++ {
		c.Items = append(c.Items, item)
	}
	c.Recalculate()
	return nil
}

// Remove drops up to quantity copies of item, earliest first. Removing an
// item that is not in the cart is a no-op.
func (c *Cart) Remove(item Item, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	kept := c.Items[:0]
	for _, it := range c.Items {
		if quantity > 0 && it.ID == item.ID {
			quantity--
			continue
		}
		kept = append(kept, it)
	}
	c.Items = kept
	c.Recalculate()
	return nil
}

// Recalculate sets Total to the sum of item prices.
func (c *Cart) Recalculate() {
	var total Money
	for _, it := range c.Items {
		total += it.Price
	}
	c.Total = total
}

// NewOrder snapshots cart for userID at now.
func NewOrder(userID int64, cart *Cart, now time.Time) *Order {
	items := make([]Item, len(cart.Items))
	copy(items, cart.Items)
	o := &Order{UserID: userID, Items: items, CreatedAt: now.UTC()}
	for _, it := range items {
		o.Total += it.Price
	}
	return o
}
