package session

import (
	"context"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
)

// MoveWishlistToCart adds one unit of a liked product to the cart and drops it
// from the wishlist. If the second write fails the cart is restored.
func (s *Session) MoveWishlistToCart(ctx context.Context, productID string) (cart.State, error) {
	var out cart.State
	err := s.locked(func() error {
		item, ok := s.wishlist.Find(productID)
		if !ok {
			return notInStore("wishlist", productID)
		}
		var err error
		out, err = s.moveIntoCart(ctx, item.Snapshot, func() error {
			_, err := s.wishlist.Remove(ctx, productID)
			return err
		})
		return err
	})
	return out, err
}

// MoveSavedToCart brings a saved item back into the cart.
func (s *Session) MoveSavedToCart(ctx context.Context, productID string) (cart.State, error) {
	var out cart.State
	err := s.locked(func() error {
		st := s.saved.State()
		item, ok := st.Find(productID)
		if !ok {
			return notInStore("saved items", productID)
		}
		var err error
		out, err = s.moveIntoCart(ctx, item.Snapshot, func() error {
			_, err := s.saved.Remove(ctx, productID)
			return err
		})
		return err
	})
	return out, err
}

func (s *Session) moveIntoCart(ctx context.Context, snap catalog.Snapshot, removeSource func() error) (cart.State, error) {
	prev := s.cart.State()
	next, err := s.cart.Add(ctx, snap, 1)
	if err != nil {
		return prev, err
	}
	if err := removeSource(); err != nil {
		s.rollback(ctx, "cart", func() error { return s.cart.Restore(ctx, prev) })
		return prev, err
	}
	return next, nil
}

// SaveForLater moves a cart line into the saved items. If removing the line
// fails the saved items are restored.
func (s *Session) SaveForLater(ctx context.Context, productID string) (cart.State, error) {
	var out cart.State
	err := s.locked(func() error {
		line, ok := s.cart.State().Find(productID)
		if !ok {
			return notInStore("cart", productID)
		}
		prevSaved := s.saved.State()
		if _, err := s.saved.Add(ctx, line.Snapshot, s.now()); err != nil {
			return err
		}
		next, err := s.cart.Remove(ctx, productID)
		if err != nil {
			s.rollback(ctx, "saved_items", func() error { return s.saved.Restore(ctx, prevSaved) })
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return s.cart.State(), err
	}
	return out, nil
}

func (s *Session) rollback(ctx context.Context, store string, restore func() error) {
	if err := restore(); err != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"visitor_id": s.visitorID,
			"store":      store,
		})
		s.logg.Error(logCtx, "rollback of multi-store move failed", err)
	}
}
