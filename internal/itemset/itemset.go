// Package itemset is the set-of-products state shared by the wishlist and
// saved-for-later stores.
package itemset

import (
	"slices"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
)

// Item is a product kept in the set, with its denormalized display data.
type Item struct {
	catalog.Snapshot
	AddedAt time.Time `json:"addedAt"`
}

// State holds at most one item per product id, in insertion order.
type State struct {
	Items []Item `json:"items"`
}

// Empty returns a set with no items.
func Empty() State {
	return State{Items: []Item{}}
}

func (s State) index(productID string) int {
	return slices.IndexFunc(s.Items, func(it Item) bool { return it.ProductID == productID })
}

// Add appends the product unless it is already present.
func (s State) Add(snap catalog.Snapshot, at time.Time) State {
	if s.Contains(snap.ProductID) {
		return s
	}
	return State{Items: append(slices.Clone(s.Items), Item{Snapshot: snap, AddedAt: at})}
}

// Remove drops the product.
func (s State) Remove(productID string) State {
	return State{Items: slices.DeleteFunc(slices.Clone(s.Items), func(it Item) bool {
		return it.ProductID == productID
	})}
}

func (s State) Clear() State {
	return Empty()
}

func (s State) Contains(productID string) bool {
	return s.index(productID) >= 0
}

// Find returns the item for productID.
func (s State) Find(productID string) (Item, bool) {
	i := s.index(productID)
	if i < 0 {
		return Item{}, false
	}
	return s.Items[i], true
}

// Clone copies the item slice.
func (s State) Clone() State {
	return State{Items: slices.Clone(s.Items)}
}

// Sanitize drops items without an id and repeated ids.
func Sanitize(s State) State {
	out := Empty()
	for _, it := range s.Items {
		it.ProductID = strings.TrimSpace(it.ProductID)
		if it.ProductID == "" || out.Contains(it.ProductID) {
			continue
		}
		out.Items = append(out.Items, it)
	}
	return out
}
