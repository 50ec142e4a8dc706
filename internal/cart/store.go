// Package cart holds the in-memory cart: an ordered sequence of lines
// mutated only through the closed action set. The store owns no
// persistence and no locking; the owning session serializes access.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/adiwijaya/tokokita-backend/pkg/money"
)

// Product is the catalog record accepted by AddItem. The engine carries
// the display attributes opaquely.
type Product struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"price"`
	Thumbnail string          `json:"thumbnail"`
	Category  string          `json:"category,omitempty"`
}

// Line is one product entry in the cart with a quantity.
type Line struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Thumbnail string          `json:"thumbnail,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Total is unit price times quantity for this line.
func (l Line) Total() decimal.Decimal {
	return money.LineTotal(l.UnitPrice, l.Quantity)
}

// Store keeps at most one line per product id, in first-add order.
// Quantity updates never reorder or duplicate lines.
type Store struct {
	lines []Line
}

func NewStore() *Store {
	return &Store{}
}

// Apply dispatches one action against the cart. Every action is total:
// there are no error conditions.
func (s *Store) Apply(action Action) {
	switch a := action.(type) {
	case AddItem:
		s.addItem(a.Product)
	case UpdateQuantity:
		s.updateQuantity(a.ProductID, a.Delta)
	case RemoveItem:
		s.removeItem(a.ProductID)
	case Clear:
		s.lines = nil
	}
}

func (s *Store) addItem(product Product) {
	for i := range s.lines {
		if s.lines[i].ProductID == product.ID {
			s.lines[i].Quantity++
			return
		}
	}
	s.lines = append(s.lines, Line{
		ProductID: product.ID,
		Title:     product.Title,
		UnitPrice: product.UnitPrice,
		Thumbnail: product.Thumbnail,
		Quantity:  1,
	})
}

func (s *Store) updateQuantity(productID string, delta int) {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			if next := s.lines[i].Quantity + delta; next > 1 {
				s.lines[i].Quantity = next
			} else {
				s.lines[i].Quantity = 1
			}
			return
		}
	}
}

func (s *Store) removeItem(productID string) {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// Add increments the quantity of an existing line or appends a new one
// with quantity 1.
func (s *Store) Add(product Product) {
	s.Apply(AddItem{Product: product})
}

// UpdateQuantity adjusts an existing line by delta, clamped at 1.
// Unknown product ids are a no-op.
func (s *Store) UpdateQuantity(productID string, delta int) {
	s.Apply(UpdateQuantity{ProductID: productID, Delta: delta})
}

// Remove deletes the matching line if present.
func (s *Store) Remove(productID string) {
	s.Apply(RemoveItem{ProductID: productID})
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.Apply(Clear{})
}

// Lines returns a copy of the current sequence in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count is the sum of quantities over all lines.
func (s *Store) Count() int {
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Total is the sum of unit price times quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Total())
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}
