package alerts

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/persist"
)

// Store is the persisted alert list of one visitor.
type Store struct {
	c     *persist.Container[State]
	newID func() string
}

// Open loads the visitor's alerts, falling back to an empty list.
func Open(ctx context.Context, deps persist.Deps) *Store {
	return &Store{
		c:     persist.Open(ctx, deps, StoreName, Empty, Sanitize),
		newID: func() string { return uuid.NewString() },
	}
}

// State returns a copy of the current alerts.
func (s *Store) State() State {
	return State{Alerts: slices.Clone(s.c.Snapshot().Alerts)}
}

// Create validates and persists a new alert. Nothing is written when the
// target is rejected.
func (s *Store) Create(ctx context.Context, snap catalog.Snapshot, target int64, at time.Time) (Alert, error) {
	alert, err := NewAlert(s.newID(), snap, target, at)
	if err != nil {
		return Alert{}, err
	}
	if _, err := s.c.Apply(ctx, "create", func(st State) (State, error) { return st.Create(alert), nil }); err != nil {
		return Alert{}, err
	}
	return alert, nil
}

func (s *Store) Remove(ctx context.Context, alertID string) (State, error) {
	return s.apply(ctx, "remove", func(st State) State { return st.Remove(alertID) })
}

func (s *Store) RemoveForProduct(ctx context.Context, productID string) (State, error) {
	return s.apply(ctx, "remove_for_product", func(st State) State { return st.RemoveForProduct(productID) })
}

func (s *Store) Clear(ctx context.Context) (State, error) {
	return s.apply(ctx, "clear", func(st State) State { return st.Clear() })
}

func (s *Store) ForProduct(productID string) []Alert {
	return s.c.Snapshot().ForProduct(productID)
}

func (s *Store) apply(ctx context.Context, op string, fn func(State) State) (State, error) {
	next, err := s.c.Apply(ctx, op, func(st State) (State, error) { return fn(st), nil })
	return State{Alerts: slices.Clone(next.Alerts)}, err
}
