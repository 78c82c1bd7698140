package models

import (
	"math"
	"slices"
)

// MaxLineQty bounds the quantity of a single cart line.
const MaxLineQty = 1_000_000

// CartItem is one line of the cart, keyed by ID (product or variant).
// Price is in whole currency units.
type CartItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Variant string `json:"variant,omitempty"`
	Price   int64  `json:"price"`
	Qty     int    `json:"qty"`
}

// Cart is an ordered list of line items with unique IDs. Quantities are
// always at least 1.
type Cart []CartItem

func (c Cart) index(id string) int {
	return slices.IndexFunc(c, func(it CartItem) bool { return it.ID == id })
}

// addInt returns a+b and whether the sum wrapped around.
func addInt[T int | int64](a, b T) (T, bool) {
	s := a + b
	return s, (b > 0 && s < a) || (b < 0 && s > a)
}

// setQty changes line i to qty unless that would push the subtotal out of
// range.
func (c Cart) setQty(i, qty int) bool {
	old := c[i].Qty
	c[i].Qty = qty
	if _, ok := c.total(); !ok {
		c[i].Qty = old
		return false
	}
	return true
}

// Add merges item into the cart: an existing line keeps its position and
// gains item.Qty, a new line is appended. It reports false and leaves the
// cart as it was when the line would exceed MaxLineQty or the subtotal
// would overflow.
func (c Cart) Add(item CartItem) (Cart, bool) {
	i := c.index(item.ID)
	if i < 0 {
		if item.Qty > MaxLineQty {
			return c, false
		}
		next := append(c, item)
		if _, ok := next.total(); !ok {
			return c, false
		}
		return next, true
	}
	qty, wrapped := addInt(c[i].Qty, item.Qty)
	if wrapped || qty > MaxLineQty {
		return c, false
	}
	return c, c.setQty(i, qty)
}

// UpdateQuantity adds delta to the line's quantity and drops the line when
// the result is not positive. Unknown ids are ignored. Increases past
// MaxLineQty or a subtotal overflow are refused with false.
func (c Cart) UpdateQuantity(id string, delta int) (Cart, bool) {
	i := c.index(id)
	if i < 0 {
		return c, true
	}
	qty, wrapped := addInt(c[i].Qty, delta)
	switch {
	case delta > 0 && (wrapped || qty > MaxLineQty):
		return c, false
	case wrapped, qty <= 0:
		return slices.Delete(c, i, i+1), true
	}
	return c, c.setQty(i, qty)
}

func (c Cart) Remove(id string) Cart {
	if i := c.index(id); i >= 0 {
		return slices.Delete(c, i, i+1)
	}
	return c
}

// Subtotal is the sum of price times quantity, saturating at
// math.MaxInt64.
func (c Cart) Subtotal() int64 {
	total, ok := c.total()
	if !ok {
		return math.MaxInt64
	}
	return total
}

func (c Cart) total() (int64, bool) {
	var total int64
	for _, it := range c {
		qty := int64(it.Qty)
		line := it.Price * qty
		if it.Price != 0 && line/it.Price != qty {
			return 0, false
		}
		var wrapped bool
		if total, wrapped = addInt(total, line); wrapped {
			return 0, false
		}
	}
	return total, true
}

// ItemCount counts distinct lines, not units.
func (c Cart) ItemCount() int {
	return len(c)
}

// TotalUnits sums quantities across lines.
func (c Cart) TotalUnits() int {
	n := 0
	for _, it := range c {
		n += it.Qty
	}
	return n
}
