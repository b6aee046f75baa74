// Package persist keeps one visitor store's state in memory and mirrors every
// committed change to a blobstore.Backend as a single JSON blob.
package persist

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/angelmondragon/storefront-backend/internal/blobstore"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// Load fallback reasons reported to metrics.
const (
	ReasonAbsent  = "absent"
	ReasonBackend = "backend"
	ReasonDecode  = "decode"
)

// Options configures a container.
type Options[S any] struct {
	Backend blobstore.Backend
	// Scope is the visitor id; Name is the store name used as the blob key.
	Scope string
	Name  string
	// Default produces the state used when nothing usable is persisted.
	Default func() S
	// Sanitize, when set, repairs decoded state (drops entries that break the
	// store's invariants) before it is exposed.
	Sanitize func(S) S
	Logger   *logger.Logger
	Metrics  *metrics.StoreMetrics
	// Report, when set, collects backend read failures.
	Report *LoadReport
}

// Container owns the in-memory copy of one store's state.
type Container[S any] struct {
	opts  Options[S]
	mu    sync.RWMutex
	state S
	// stale is set while the held state is a fallback for an unreadable
	// backend. The persisted blob may still exist.
	stale bool
}

// Load reads the persisted blob. Absence, backend failures and malformed
// payloads all degrade to the default state; Load never fails. After a
// backend failure the container is stale and re-reads before its first write.
func Load[S any](ctx context.Context, opts Options[S]) *Container[S] {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	c := &Container[S]{opts: opts}
	state, err := c.read(ctx)
	if err != nil {
		c.stale = true
		opts.Report.add(opts.Name, err)
	}
	c.state = state
	return c
}

// read returns the usable state. The error is non-nil only when the backend
// could not be read; the returned state is then the default.
func (c *Container[S]) read(ctx context.Context) (S, error) {
	ctx = c.opts.Logger.WithStore(ctx, c.opts.Name)
	if c.opts.Backend == nil {
		return c.fallback(ctx, ReasonAbsent, nil), nil
	}
	blob, ok, err := c.opts.Backend.Get(ctx, c.opts.Scope, c.opts.Name)
	if err != nil {
		return c.fallback(ctx, ReasonBackend, err), err
	}
	if !ok || len(blob) == 0 {
		return c.fallback(ctx, ReasonAbsent, nil), nil
	}
	state := c.defaultState()
	if err := json.Unmarshal(blob, &state); err != nil {
		return c.fallback(ctx, ReasonDecode, err), nil
	}
	if c.opts.Sanitize != nil {
		state = c.opts.Sanitize(state)
	}
	return state, nil
}

// Stale reports whether the held state is a fallback for a failed read.
func (c *Container[S]) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stale
}

// refresh re-reads a stale container. It must be called with mu held.
func (c *Container[S]) refresh(ctx context.Context) error {
	if !c.stale {
		return nil
	}
	state, err := c.read(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload "+c.opts.Name+" state")
	}
	c.state = state
	c.stale = false
	return nil
}

func (c *Container[S]) fallback(ctx context.Context, reason string, err error) S {
	c.opts.Metrics.IncLoadFallback(c.opts.Name, reason)
	if err != nil {
		ctx = c.opts.Logger.WithFields(ctx, map[string]any{
			"reason": reason,
			"error":  err.Error(),
		})
		c.opts.Logger.Warn(ctx, "persisted state unusable, using default")
	}
	return c.defaultState()
}

func (c *Container[S]) defaultState() S {
	if c.opts.Default == nil {
		var zero S
		return zero
	}
	return c.opts.Default()
}

// Name returns the store name.
func (c *Container[S]) Name() string {
	return c.opts.Name
}

// Snapshot returns the current state. Callers must not mutate shared slices.
func (c *Container[S]) Snapshot() S {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Apply runs a pure transition against the current state, writes the result
// and only then makes it visible. On any error the previous state is kept and
// returned.
func (c *Container[S]) Apply(ctx context.Context, op string, fn func(S) (S, error)) (S, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.refresh(ctx); err != nil {
		return c.state, err
	}
	next, err := fn(c.state)
	if err != nil {
		return c.state, err
	}
	if err := c.write(ctx, next); err != nil {
		return c.state, err
	}
	c.state = next
	c.opts.Metrics.IncMutation(c.opts.Name, op)
	return next, nil
}

// Restore writes a previously captured state back. It is used to undo the
// first half of a multi-store move.
func (c *Container[S]) Restore(ctx context.Context, prev S) error {
	_, err := c.Apply(ctx, "restore", func(S) (S, error) { return prev, nil })
	return err
}

func (c *Container[S]) write(ctx context.Context, next S) error {
	blob, err := json.Marshal(next)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode "+c.opts.Name+" state")
	}
	if c.opts.Backend == nil {
		return nil
	}
	if err := c.opts.Backend.Set(ctx, c.opts.Scope, c.opts.Name, blob); err != nil {
		c.opts.Metrics.IncPersistFailure(c.opts.Name)
		logCtx := c.opts.Logger.WithStore(ctx, c.opts.Name)
		logCtx = c.opts.Logger.WithFields(logCtx, pkgerrors.Dump(err).Fields())
		c.opts.Logger.Error(logCtx, "persist state failed", err)
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist "+c.opts.Name+" state")
	}
	return nil
}
