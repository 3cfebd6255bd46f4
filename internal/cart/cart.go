package cart

import (
	"math"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
)

// LineItem pairs a product snapshot with a positive quantity.
type LineItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// LineTotal is price times quantity, unrounded.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line item per product id, in insertion order.
// Totals are derived on every read. Safe for concurrent use.
type Cart struct {
	mu    sync.RWMutex
	items []LineItem
	index map[string]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: map[string]int{}}
}

// Add appends product with quantity, or accumulates onto its existing line item.
// Stock is not checked here. An accumulation that would overflow int is rejected.
func (c *Cart) Add(product catalog.Product, quantity int) error {
	if quantity < 1 {
		return invalidQuantity(product.ID, quantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if idx, ok := c.index[product.ID]; ok {
		if quantity > math.MaxInt-c.items[idx].Quantity {
			return invalidQuantity(product.ID, quantity)
		}
		c.items[idx].Quantity += quantity
		return nil
	}
	c.index[product.ID] = len(c.items)
	c.items = append(c.items, LineItem{Product: product, Quantity: quantity})
	return nil
}

// UpdateQuantity sets the absolute quantity of an existing line item.
// Quantities below one are rejected rather than clamped; removal goes through Remove.
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return invalidQuantity(productID, quantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.index[productID]
	if !ok {
		return itemNotFound(productID)
	}
	c.items[idx].Quantity = quantity
	return nil
}

// Remove deletes the line item for productID. Absent ids are a no-op.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.index[productID]
	if !ok {
		return
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	delete(c.index, productID)
	for i := idx; i < len(c.items); i++ {
		c.index[c.items[i].Product.ID] = i
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.index = map[string]int{}
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return cloneItems(c.items)
}

// Quantity returns the quantity held for productID.
func (c *Cart) Quantity(productID string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx, ok := c.index[productID]
	if !ok {
		return 0, false
	}
	return c.items[idx].Quantity, true
}

// ItemCount is the sum of quantities across line items.
func (c *Cart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Subtotal is the sum of price times quantity across line items.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return subtotalOf(c.items)
}

// IsEmpty reports whether the cart holds no line items.
func (c *Cart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items) == 0
}

// Snapshot returns the items together with totals computed under one read lock.
func (c *Cart) Snapshot() ([]LineItem, int, decimal.Decimal) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := cloneItems(c.items)
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return items, count, subtotalOf(items)
}

// Drain empties the cart and returns what it held, atomically.
func (c *Cart) Drain() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.items
	c.items = nil
	c.index = map[string]int{}
	return items
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = LineItem{Product: item.Product.Clone(), Quantity: item.Quantity}
	}
	return out
}

// SubtotalOf sums price times quantity across items.
func SubtotalOf(items []LineItem) decimal.Decimal {
	return subtotalOf(items)
}

func subtotalOf(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
