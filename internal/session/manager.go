package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/singleflight"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const maxVisitorIDLength = 128

// Manager caches one Session per visitor. Concurrent first requests for the
// same visitor share a single load. Sessions idle for longer than the sweep
// window are closed by Sweep; their state stays persisted.
type Manager struct {
	deps Deps
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
	loads    singleflight.Group
}

type entry struct {
	session  *Session
	lastUsed time.Time
}

// NewManager validates deps and returns an empty manager.
func NewManager(deps Deps) (*Manager, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{deps: deps, now: now, sessions: make(map[string]*entry)}, nil
}

// ValidateVisitorID checks a client supplied visitor id.
func ValidateVisitorID(visitorID string) error {
	if strings.TrimSpace(visitorID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "visitor id is required")
	}
	if len(visitorID) > maxVisitorIDLength || strings.ContainsAny(visitorID, ": \t\r\n") {
		return pkgerrors.New(pkgerrors.CodeValidation, "visitor id is malformed").
			WithDetails(map[string]any{"maxLength": maxVisitorIDLength})
	}
	return nil
}

// Get returns the visitor's session, opening it on first use. The load is
// shared by concurrent callers, so it ignores the cancellation of whichever
// request started it. A failed load is not cached.
func (m *Manager) Get(ctx context.Context, visitorID string) (*Session, error) {
	if err := ValidateVisitorID(visitorID); err != nil {
		return nil, err
	}
	if s := m.touch(visitorID); s != nil {
		return s, nil
	}
	v, err, _ := m.loads.Do(visitorID, func() (any, error) {
		if s := m.touch(visitorID); s != nil {
			return s, nil
		}
		s, err := Open(context.WithoutCancel(ctx), visitorID, m.deps)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.sessions[visitorID] = &entry{session: s, lastUsed: m.now()}
		m.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

// touch returns the cached session and marks it used.
func (m *Manager) touch(visitorID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[visitorID]
	if !ok {
		return nil
	}
	e.lastUsed = m.now()
	return e.session
}

// Len reports the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Evict closes and forgets one visitor's session. State stays persisted.
func (m *Manager) Evict(visitorID string) error {
	m.mu.Lock()
	e, ok := m.sessions[visitorID]
	delete(m.sessions, visitorID)
	m.mu.Unlock()
	if !ok {
		return nil
	}
	return e.session.Close()
}

// Sweep closes every session unused for at least idle and returns how many
// were evicted.
func (m *Manager) Sweep(idle time.Duration) (int, error) {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	var stale []*Session
	for id, e := range m.sessions {
		if !e.lastUsed.After(cutoff) {
			stale = append(stale, e.session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	var err error
	for _, s := range stale {
		err = multierr.Append(err, s.Close())
	}
	return len(stale), err
}

// RunSweeper calls Sweep every interval until ctx is done. A non-positive
// interval or idle window disables sweeping.
func (m *Manager) RunSweeper(ctx context.Context, interval, idle time.Duration, logg *logger.Logger) error {
	if interval <= 0 || idle <= 0 {
		return nil
	}
	if logg == nil {
		logg = logger.Nop()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := m.Sweep(idle)
			if err != nil {
				logg.Error(ctx, "session sweep failed", err)
			}
			if n > 0 {
				logg.Debug(logg.WithField(ctx, "evicted", n), "idle sessions evicted")
			}
		}
	}
}

// Close tears down every session and reports all failures together.
func (m *Manager) Close() error {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*entry)
	m.mu.Unlock()

	var err error
	for _, e := range sessions {
		err = multierr.Append(err, e.session.Close())
	}
	return err
}
