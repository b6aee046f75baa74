// Package theme persists the visitor's colour scheme.
package theme

import (
	"context"

	"github.com/angelmondragon/storefront-backend/internal/persist"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// StoreName is the blob key of the theme.
const StoreName = "theme"

// State is the persisted preference. Dark is the default.
type State struct {
	Theme enums.Theme `json:"theme"`
}

func Default() State {
	return State{Theme: enums.ThemeDark}
}

// Set selects a theme.
func (s State) Set(t enums.Theme) (State, error) {
	if !t.IsValid() {
		return s, pkgerrors.New(pkgerrors.CodeValidation, "unknown theme").
			WithDetails(map[string]string{"theme": string(t)})
	}
	return State{Theme: t}, nil
}

// Toggle flips between dark and light.
func (s State) Toggle() State {
	return State{Theme: s.Theme.Opposite()}
}

// Sanitize resets unknown themes to the default.
func Sanitize(s State) State {
	if !s.Theme.IsValid() {
		return Default()
	}
	return s
}

// Store is the persisted theme of one visitor.
type Store struct {
	c *persist.Container[State]
}

func Open(ctx context.Context, deps persist.Deps) *Store {
	return &Store{c: persist.Open(ctx, deps, StoreName, Default, Sanitize)}
}

func (s *Store) Current() enums.Theme {
	return s.c.Snapshot().Theme
}

func (s *Store) Set(ctx context.Context, t enums.Theme) (enums.Theme, error) {
	next, err := s.c.Apply(ctx, "set", func(st State) (State, error) { return st.Set(t) })
	return next.Theme, err
}

func (s *Store) Toggle(ctx context.Context) (enums.Theme, error) {
	next, err := s.c.Apply(ctx, "toggle", func(st State) (State, error) { return st.Toggle(), nil })
	return next.Theme, err
}
