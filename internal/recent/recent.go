// Package recent tracks the products a visitor viewed last.
package recent

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/persist"
)

const (
	// StoreName is the blob key of the history.
	StoreName = "recently_viewed"
	// MaxEntries caps the history length.
	MaxEntries = 10
)

// Entry is one viewed product.
type Entry struct {
	catalog.Snapshot
	ViewedAt time.Time `json:"viewedAt"`
}

// State lists entries most recent first, without duplicates.
type State struct {
	Entries []Entry `json:"entries"`
}

func Empty() State {
	return State{Entries: []Entry{}}
}

// Record moves the product to the front, dropping any older entry for it and
// anything beyond MaxEntries.
func (s State) Record(snap catalog.Snapshot, at time.Time) State {
	entries := make([]Entry, 0, min(len(s.Entries)+1, MaxEntries))
	entries = append(entries, Entry{Snapshot: snap, ViewedAt: at})
	for _, e := range s.Entries {
		if len(entries) == MaxEntries {
			break
		}
		if e.ProductID == snap.ProductID {
			continue
		}
		entries = append(entries, e)
	}
	return State{Entries: entries}
}

func (s State) Clear() State {
	return Empty()
}

// Sanitize keeps the first MaxEntries distinct entries with ids.
func Sanitize(s State) State {
	out := Empty()
	seen := make(map[string]struct{}, len(s.Entries))
	for _, e := range s.Entries {
		id := strings.TrimSpace(e.ProductID)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out.Entries = append(out.Entries, e)
		if len(out.Entries) == MaxEntries {
			break
		}
	}
	return out
}

// Store is the persisted history of one visitor.
type Store struct {
	c *persist.Container[State]
}

func Open(ctx context.Context, deps persist.Deps) *Store {
	return &Store{c: persist.Open(ctx, deps, StoreName, Empty, Sanitize)}
}

func (s *Store) State() State {
	return State{Entries: slices.Clone(s.c.Snapshot().Entries)}
}

func (s *Store) Record(ctx context.Context, snap catalog.Snapshot, at time.Time) (State, error) {
	next, err := s.c.Apply(ctx, "record", func(st State) (State, error) { return st.Record(snap, at), nil })
	return State{Entries: slices.Clone(next.Entries)}, err
}

func (s *Store) Clear(ctx context.Context) (State, error) {
	next, err := s.c.Apply(ctx, "clear", func(st State) (State, error) { return st.Clear(), nil })
	return State{Entries: slices.Clone(next.Entries)}, err
}
