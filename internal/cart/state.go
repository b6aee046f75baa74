// Package cart holds a visitor's cart lines. State transitions are pure; Store
// persists them through a persist.Container.
package cart

import (
	"slices"
	"strings"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/pricing"
)

// StoreName is the blob key of the cart.
const StoreName = "cart"

// Line is one product in the cart with its denormalized display data.
// Quantity is always at least 1.
type Line struct {
	catalog.Snapshot
	Quantity int `json:"quantity"`
}

// Item converts the line for the pricing engine.
func (l Line) Item() pricing.Item {
	return pricing.Item{UnitPrice: l.Price, Quantity: l.Quantity}
}

// State is the persisted cart.
type State struct {
	Lines []Line `json:"items"`
}

// Empty returns a cart with no lines.
func Empty() State {
	return State{Lines: []Line{}}
}

func (s State) index(productID string) int {
	return slices.IndexFunc(s.Lines, func(l Line) bool { return l.ProductID == productID })
}

// Add increments the quantity of an existing line, or appends a new line.
// Quantities below 1 count as 1.
func (s State) Add(snap catalog.Snapshot, qty int) State {
	if qty < 1 {
		qty = 1
	}
	lines := slices.Clone(s.Lines)
	if i := s.index(snap.ProductID); i >= 0 {
		lines[i].Quantity += qty
		return State{Lines: lines}
	}
	return State{Lines: append(lines, Line{Snapshot: snap, Quantity: qty})}
}

// UpdateQuantity sets the quantity of a line. Anything below 1 removes it.
// Unknown ids leave the cart unchanged.
func (s State) UpdateQuantity(productID string, qty int) State {
	if qty < 1 {
		return s.Remove(productID)
	}
	i := s.index(productID)
	if i < 0 {
		return s
	}
	lines := slices.Clone(s.Lines)
	lines[i].Quantity = qty
	return State{Lines: lines}
}

// Remove drops the line for productID.
func (s State) Remove(productID string) State {
	return State{Lines: slices.DeleteFunc(slices.Clone(s.Lines), func(l Line) bool {
		return l.ProductID == productID
	})}
}

// Clear empties the cart.
func (s State) Clear() State {
	return Empty()
}

// Count returns the number of units across all lines.
func (s State) Count() int {
	total := 0
	for _, l := range s.Lines {
		total += l.Quantity
	}
	return total
}

// Contains reports whether productID has a line.
func (s State) Contains(productID string) bool {
	return s.index(productID) >= 0
}

// Find returns the line for productID.
func (s State) Find(productID string) (Line, bool) {
	i := s.index(productID)
	if i < 0 {
		return Line{}, false
	}
	return s.Lines[i], true
}

// Items converts every line for the pricing engine.
func (s State) Items() []pricing.Item {
	items := make([]pricing.Item, len(s.Lines))
	for i, l := range s.Lines {
		items[i] = l.Item()
	}
	return items
}

// Sanitize repairs decoded state: lines without an id or with a quantity
// below 1 are dropped, and repeated ids are merged.
func Sanitize(s State) State {
	out := Empty()
	for _, l := range s.Lines {
		l.ProductID = strings.TrimSpace(l.ProductID)
		if l.ProductID == "" || l.Quantity < 1 {
			continue
		}
		if i := out.index(l.ProductID); i >= 0 {
			out.Lines[i].Quantity += l.Quantity
			continue
		}
		out.Lines = append(out.Lines, l)
	}
	return out
}
