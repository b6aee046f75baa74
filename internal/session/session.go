// Package session bundles the persisted stores of one visitor and serializes
// every mutation to them.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/storefront-backend/internal/alerts"
	"github.com/angelmondragon/storefront-backend/internal/blobstore"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/delivery"
	"github.com/angelmondragon/storefront-backend/internal/location"
	"github.com/angelmondragon/storefront-backend/internal/persist"
	"github.com/angelmondragon/storefront-backend/internal/recent"
	"github.com/angelmondragon/storefront-backend/internal/saved"
	"github.com/angelmondragon/storefront-backend/internal/theme"
	"github.com/angelmondragon/storefront-backend/internal/wishlist"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// Deps groups what every session needs.
type Deps struct {
	Catalog     *catalog.Catalog
	Backend     blobstore.Backend
	Logger      *logger.Logger
	Metrics     *metrics.StoreMetrics
	LookupDelay time.Duration
	Now         func() time.Time
}

func (d Deps) validate() error {
	if d.Catalog == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "catalog is required")
	}
	if d.Backend == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "state backend is required")
	}
	return nil
}

// Session is one visitor's view of the storefront. All mutations hold mu
// across read-modify-write so each visitor has a single logical writer.
type Session struct {
	visitorID string
	catalog   *catalog.Catalog
	logg      *logger.Logger
	now       func() time.Time

	mu     sync.Mutex
	closed bool

	cart     *cart.Store
	wishlist *wishlist.Store
	saved    *saved.Store
	alerts   *alerts.Store
	recent   *recent.Store
	location *location.Store
	theme    *theme.Store
	resolver *delivery.Resolver
}

// Open loads every store of visitorID. Absent or malformed blobs fall back to
// defaults. A store whose backend could not be read fails Open with
// CodeDependency, so no caller mutates state that merely failed to load.
func Open(ctx context.Context, visitorID string, deps Deps) (*Session, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	ctx = deps.Logger.WithVisitorID(ctx, visitorID)
	report := &persist.LoadReport{}
	pd := persist.Deps{
		Backend: deps.Backend,
		Scope:   visitorID,
		Logger:  deps.Logger,
		Metrics: deps.Metrics,
		Report:  report,
	}
	s := &Session{
		visitorID: visitorID,
		catalog:   deps.Catalog,
		logg:      deps.Logger,
		now:       deps.Now,
		cart:      cart.Open(ctx, pd),
		wishlist:  wishlist.Open(ctx, pd),
		saved:     saved.Open(ctx, pd),
		alerts:    alerts.Open(ctx, pd),
		recent:    recent.Open(ctx, pd),
		location:  location.Open(ctx, pd),
		theme:     theme.Open(ctx, pd),
		resolver:  delivery.NewResolver(deps.LookupDelay, deps.Metrics),
	}
	if err := report.Err(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load visitor state")
	}
	deps.Logger.Debug(ctx, "session opened")
	return s, nil
}

// VisitorID returns the id the session is scoped to.
func (s *Session) VisitorID() string {
	return s.visitorID
}

// Catalog returns the catalog the session resolves products against.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Close aborts any in-flight delivery lookup. Later mutations fail.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return pkgerrors.New(pkgerrors.CodeConflict, "session already closed").
			WithDetails(map[string]string{"visitorId": s.visitorID})
	}
	s.closed = true
	s.resolver.Cancel()
	return nil
}

// locked runs fn under the session mutex.
func (s *Session) locked(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return pkgerrors.New(pkgerrors.CodeConflict, "session closed")
	}
	return fn()
}

func (s *Session) product(productID string) (catalog.Product, error) {
	p, ok := s.catalog.Find(productID)
	if !ok {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]string{"productId": productID})
	}
	return p, nil
}

func notInStore(store, productID string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not in "+store).
		WithDetails(map[string]string{"productId": productID})
}

// Cart

func (s *Session) Cart() cart.State {
	return s.cart.State()
}

func (s *Session) CartCount() int {
	return s.cart.Count()
}

func (s *Session) InCart(productID string) bool {
	return s.cart.Contains(productID)
}

// AddToCart adds qty units of a catalog product.
func (s *Session) AddToCart(ctx context.Context, productID string, qty int) (cart.State, error) {
	var out cart.State
	err := s.locked(func() error {
		p, err := s.product(productID)
		if err != nil {
			return err
		}
		out, err = s.cart.Add(ctx, p.Snapshot(), qty)
		return err
	})
	return out, err
}

func (s *Session) UpdateCartQuantity(ctx context.Context, productID string, qty int) (cart.State, error) {
	var out cart.State
	err := s.locked(func() (err error) {
		out, err = s.cart.UpdateQuantity(ctx, productID, qty)
		return err
	})
	return out, err
}

func (s *Session) RemoveFromCart(ctx context.Context, productID string) (cart.State, error) {
	var out cart.State
	err := s.locked(func() (err error) {
		out, err = s.cart.Remove(ctx, productID)
		return err
	})
	return out, err
}

func (s *Session) ClearCart(ctx context.Context) (cart.State, error) {
	var out cart.State
	err := s.locked(func() (err error) {
		out, err = s.cart.Clear(ctx)
		return err
	})
	return out, err
}

// Wishlist

func (s *Session) Wishlist() wishlist.State {
	return s.wishlist.State()
}

func (s *Session) InWishlist(productID string) bool {
	return s.wishlist.Contains(productID)
}

func (s *Session) AddToWishlist(ctx context.Context, productID string) (wishlist.State, error) {
	var out wishlist.State
	err := s.locked(func() error {
		p, err := s.product(productID)
		if err != nil {
			return err
		}
		out, err = s.wishlist.Add(ctx, p.Snapshot(), s.now())
		return err
	})
	return out, err
}

func (s *Session) RemoveFromWishlist(ctx context.Context, productID string) (wishlist.State, error) {
	var out wishlist.State
	err := s.locked(func() (err error) {
		out, err = s.wishlist.Remove(ctx, productID)
		return err
	})
	return out, err
}

func (s *Session) ClearWishlist(ctx context.Context) (wishlist.State, error) {
	var out wishlist.State
	err := s.locked(func() (err error) {
		out, err = s.wishlist.Clear(ctx)
		return err
	})
	return out, err
}

// Saved items

func (s *Session) SavedItems() saved.State {
	return s.saved.State()
}

func (s *Session) RemoveSaved(ctx context.Context, productID string) (saved.State, error) {
	var out saved.State
	err := s.locked(func() (err error) {
		out, err = s.saved.Remove(ctx, productID)
		return err
	})
	return out, err
}

func (s *Session) ClearSaved(ctx context.Context) (saved.State, error) {
	var out saved.State
	err := s.locked(func() (err error) {
		out, err = s.saved.Clear(ctx)
		return err
	})
	return out, err
}

// Alerts

func (s *Session) Alerts() alerts.State {
	return s.alerts.State()
}

// CreateAlert watches a catalog product for a price below its current one.
func (s *Session) CreateAlert(ctx context.Context, productID string, target int64) (alerts.Alert, error) {
	var out alerts.Alert
	err := s.locked(func() error {
		p, err := s.product(productID)
		if err != nil {
			return err
		}
		out, err = s.alerts.Create(ctx, p.Snapshot(), target, s.now())
		return err
	})
	return out, err
}

func (s *Session) RemoveAlert(ctx context.Context, alertID string) (alerts.State, error) {
	var out alerts.State
	err := s.locked(func() (err error) {
		out, err = s.alerts.Remove(ctx, alertID)
		return err
	})
	return out, err
}

func (s *Session) RemoveAlertsForProduct(ctx context.Context, productID string) (alerts.State, error) {
	var out alerts.State
	err := s.locked(func() (err error) {
		out, err = s.alerts.RemoveForProduct(ctx, productID)
		return err
	})
	return out, err
}

func (s *Session) ClearAlerts(ctx context.Context) (alerts.State, error) {
	var out alerts.State
	err := s.locked(func() (err error) {
		out, err = s.alerts.Clear(ctx)
		return err
	})
	return out, err
}

func (s *Session) AlertsForProduct(productID string) []alerts.Alert {
	return s.alerts.ForProduct(productID)
}

// TriggeredAlerts lists alerts whose target the current catalog price meets.
func (s *Session) TriggeredAlerts() []alerts.Alert {
	return s.alerts.State().Triggered(func(productID string) (int64, bool) {
		p, ok := s.catalog.Find(productID)
		return p.Price, ok
	})
}

// Recently viewed

func (s *Session) Recent() recent.State {
	return s.recent.State()
}

// RecordView puts a product at the front of the history. Unknown ids are
// recorded with placeholder display data.
func (s *Session) RecordView(ctx context.Context, productID string) (recent.State, error) {
	var out recent.State
	err := s.locked(func() (err error) {
		out, err = s.recent.Record(ctx, s.catalog.Snapshot(productID), s.now())
		return err
	})
	return out, err
}

func (s *Session) ClearRecent(ctx context.Context) (recent.State, error) {
	var out recent.State
	err := s.locked(func() (err error) {
		out, err = s.recent.Clear(ctx)
		return err
	})
	return out, err
}

// Location and delivery

func (s *Session) Location() (location.Profile, bool) {
	return s.location.Profile()
}

func (s *Session) SetLocation(ctx context.Context, p location.Profile) (location.Profile, error) {
	var out location.Profile
	err := s.locked(func() (err error) {
		out, err = s.location.Set(ctx, p)
		return err
	})
	return out, err
}

func (s *Session) ClearLocation(ctx context.Context) error {
	return s.locked(func() error { return s.location.Clear(ctx) })
}

// CheckDelivery resolves a pincode. It does not hold the session lock, so a
// newer check can supersede a pending one.
func (s *Session) CheckDelivery(ctx context.Context, pincode string) (delivery.Estimate, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return delivery.Estimate{}, pkgerrors.New(pkgerrors.CodeConflict, "session closed")
	}
	return s.resolver.Lookup(ctx, pincode)
}

// Theme

func (s *Session) Theme() enums.Theme {
	return s.theme.Current()
}

func (s *Session) SetTheme(ctx context.Context, t enums.Theme) (enums.Theme, error) {
	var out enums.Theme
	err := s.locked(func() (err error) {
		out, err = s.theme.Set(ctx, t)
		return err
	})
	if err != nil {
		return s.theme.Current(), err
	}
	return out, nil
}

func (s *Session) ToggleTheme(ctx context.Context) (enums.Theme, error) {
	var out enums.Theme
	err := s.locked(func() (err error) {
		out, err = s.theme.Toggle(ctx)
		return err
	})
	if err != nil {
		return s.theme.Current(), err
	}
	return out, nil
}
