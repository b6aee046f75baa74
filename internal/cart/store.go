package cart

import (
	"context"
	"slices"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/persist"
)

// Store is the persisted cart of one visitor.
type Store struct {
	c *persist.Container[State]
}

// Open loads the visitor's cart, falling back to an empty one.
func Open(ctx context.Context, deps persist.Deps) *Store {
	return &Store{c: persist.Open(ctx, deps, StoreName, Empty, Sanitize)}
}

// State returns a copy of the current cart.
func (s *Store) State() State {
	return State{Lines: slices.Clone(s.c.Snapshot().Lines)}
}

func (s *Store) Add(ctx context.Context, snap catalog.Snapshot, qty int) (State, error) {
	return s.apply(ctx, "add", func(st State) (State, error) { return st.Add(snap, qty), nil })
}

func (s *Store) UpdateQuantity(ctx context.Context, productID string, qty int) (State, error) {
	return s.apply(ctx, "update_quantity", func(st State) (State, error) { return st.UpdateQuantity(productID, qty), nil })
}

func (s *Store) Remove(ctx context.Context, productID string) (State, error) {
	return s.apply(ctx, "remove", func(st State) (State, error) { return st.Remove(productID), nil })
}

func (s *Store) Clear(ctx context.Context) (State, error) {
	return s.apply(ctx, "clear", func(st State) (State, error) { return st.Clear(), nil })
}

// Count returns the number of units in the cart.
func (s *Store) Count() int {
	return s.c.Snapshot().Count()
}

func (s *Store) Contains(productID string) bool {
	return s.c.Snapshot().Contains(productID)
}

// Restore writes back a state captured before a failed multi-store move.
func (s *Store) Restore(ctx context.Context, prev State) error {
	return s.c.Restore(ctx, prev)
}

func (s *Store) apply(ctx context.Context, op string, fn func(State) (State, error)) (State, error) {
	next, err := s.c.Apply(ctx, op, fn)
	return State{Lines: slices.Clone(next.Lines)}, err
}
