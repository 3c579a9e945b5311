package cart

import (
	"github.com/shopspring/decimal"

	"github.com/sheikhstore/storefront/internal/domain/catalog"
)

// LineItem is one row of the cart: a product snapshot captured at add
// time, a positive quantity, and an optional color variant. Two rows are
// the same item iff product id and color both match.
type LineItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Color    string          `json:"selectedColor,omitempty"`
}

// Subtotal returns unit price times quantity for this row.
func (l *LineItem) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// matches reports whether this row is the (product, color) identity key.
func (l *LineItem) matches(productID int64, color string) bool {
	return l.Product.ID == productID && l.Color == color
}

// Cart holds the ordered line-item sequence and the cart-panel visibility
// flag. All operations are synchronous, run to completion, and cannot
// fail; the quantity floor (rows never drop to or below zero) is the only
// guarded transition. Cart is not safe for concurrent use on its own; the
// owning shop context serializes access.
type Cart struct {
	items []LineItem
	open  bool
}

// New creates an empty, closed cart.
func New() *Cart {
	return &Cart{}
}

// AddItem merges the quantity into an existing (product id, color) row or
// appends a new row at the end of the sequence. A non-positive quantity is
// treated as the contract default of one. The resulting row is returned.
func (c *Cart) AddItem(product catalog.Product, quantity int, color string) LineItem {
	if quantity <= 0 {
		quantity = 1
	}

	for i := range c.items {
		if c.items[i].matches(product.ID, color) {
			c.items[i].Quantity += quantity
			return c.items[i]
		}
	}

	item := LineItem{Product: product, Quantity: quantity, Color: color}
	c.items = append(c.items, item)
	return item
}

// RemoveItem removes every row for the product, regardless of color
// variant. This deliberately mirrors the per-product remove button in the
// cart panel; removing a single variant is done through UpdateQuantity.
func (c *Cart) RemoveItem(productID int64) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// UpdateQuantity sets the quantity on every row for the product. A
// non-positive quantity removes the rows entirely; a quantity of zero is
// never stored.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	if quantity < 0 {
		quantity = 0
	}

	kept := c.items[:0]
	for _, item := range c.items {
		if item.Product.ID == productID {
			item.Quantity = quantity
		}
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// Clear empties the line-item sequence. The open flag is untouched.
func (c *Cart) Clear() {
	c.items = nil
}

// SetOpen sets the cart-panel visibility flag.
func (c *Cart) SetOpen(open bool) {
	c.open = open
}

// ToggleOpen flips the cart-panel visibility flag and returns the new value.
func (c *Cart) ToggleOpen() bool {
	c.open = !c.open
	return c.open
}

// IsOpen returns the cart-panel visibility flag.
func (c *Cart) IsOpen() bool {
	return c.open
}

// Total recomputes the sum of subtotals on every call. Nothing is cached
// across mutations, so the value can never go stale.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.items {
		total = total.Add(c.items[i].Subtotal())
	}
	return total
}

// ItemCount returns the sum of quantities across all rows, the number the
// cart badge shows.
func (c *Cart) ItemCount() int {
	count := 0
	for i := range c.items {
		count += c.items[i].Quantity
	}
	return count
}

// Items returns a copy of the line-item sequence in insertion order.
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Len returns the number of distinct rows.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty returns true if the cart holds no rows.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Replace swaps in a previously persisted sequence. Used for hydration
// only; rows with non-positive quantities are dropped rather than kept.
func (c *Cart) Replace(items []LineItem) {
	c.items = nil
	for _, item := range items {
		if item.Quantity > 0 {
			c.items = append(c.items, item)
		}
	}
}
