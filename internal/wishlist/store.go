// Package wishlist persists the products a visitor has liked.
package wishlist

import (
	"context"
	"time"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/itemset"
	"github.com/angelmondragon/storefront-backend/internal/persist"
)

// StoreName is the blob key of the wishlist.
const StoreName = "wishlist"

type (
	Item  = itemset.Item
	State = itemset.State
)

// Store is the persisted wishlist of one visitor.
type Store struct {
	c *persist.Container[State]
}

// Open loads the visitor's wishlist, falling back to an empty one.
func Open(ctx context.Context, deps persist.Deps) *Store {
	return &Store{c: persist.Open(ctx, deps, StoreName, itemset.Empty, itemset.Sanitize)}
}

// State returns a copy of the current wishlist.
func (s *Store) State() State {
	return s.c.Snapshot().Clone()
}

// Add is a no-op when the product is already liked.
func (s *Store) Add(ctx context.Context, snap catalog.Snapshot, at time.Time) (State, error) {
	return s.apply(ctx, "add", func(st State) State { return st.Add(snap, at) })
}

func (s *Store) Remove(ctx context.Context, productID string) (State, error) {
	return s.apply(ctx, "remove", func(st State) State { return st.Remove(productID) })
}

func (s *Store) Clear(ctx context.Context) (State, error) {
	return s.apply(ctx, "clear", func(st State) State { return st.Clear() })
}

func (s *Store) Contains(productID string) bool {
	return s.c.Snapshot().Contains(productID)
}

// Find returns the wishlist entry for productID.
func (s *Store) Find(productID string) (Item, bool) {
	return s.c.Snapshot().Find(productID)
}

// Restore writes back a state captured before a failed multi-store move.
func (s *Store) Restore(ctx context.Context, prev State) error {
	return s.c.Restore(ctx, prev)
}

func (s *Store) apply(ctx context.Context, op string, fn func(State) State) (State, error) {
	next, err := s.c.Apply(ctx, op, func(st State) (State, error) { return fn(st), nil })
	return next.Clone(), err
}
