// Package checkout turns a shopper's cart into one order per vendor.
package checkout

import "sync"

type Variant struct {
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

// Item is one cart line. A zero VendorID means the vendor could not be
// resolved; such lines are never ordered.
type Item struct {
	ProductID uint     `json:"productId"`
	VendorID  uint     `json:"vendorId,omitempty"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Quantity  int      `json:"quantity"`
	Variant   *Variant `json:"variant,omitempty"`
}

func (i Item) key() lineKey {
	k := lineKey{productID: i.ProductID}
	if i.Variant != nil {
		k.variant = *i.Variant
	}
	return k
}

type lineKey struct {
	productID uint
	variant   Variant
}

// Cart is a session-scoped shopping cart owned by one client. It is safe for
// concurrent use.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func NewCart(items ...Item) *Cart {
	c := &Cart{}
	for _, item := range items {
		c.Add(item)
	}
	return c
}

// Add appends a line, or adds to the quantity of an existing line for the
// same product and variant.
func (c *Cart) Add(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.items {
		if c.items[i].key() == item.key() {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

// UpdateQuantity sets a line's quantity, clamped to a minimum of 1.
func (c *Cart) UpdateQuantity(productID uint, variant *Variant, quantity int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Item{ProductID: productID, Variant: variant}.key()
	for i := range c.items {
		if c.items[i].key() == key {
			c.items[i].Quantity = max(1, quantity)
			return true
		}
	}
	return false
}

func (c *Cart) Remove(productID uint, variant *Variant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Item{ProductID: productID, Variant: variant}.key()
	kept := c.items[:0]
	for _, item := range c.items {
		if item.key() != key {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Item(nil), c.items...)
}

func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
