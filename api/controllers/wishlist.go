package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/session"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type productRefRequest struct {
	ProductID string `json:"productId" validate:"required,max=64"`
}

type moveToCartResponse struct {
	Cart cartView `json:"cart"`
	From any      `json:"from"`
}

func WishlistFetch(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		return sess.Wishlist(), nil
	})
}

func WishlistAdd(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		var payload productRefRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		return sess.AddToWishlist(r.Context(), strings.TrimSpace(payload.ProductID))
	})
}

func WishlistRemove(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		return sess.RemoveFromWishlist(r.Context(), chi.URLParam(r, "productId"))
	})
}

func WishlistClear(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		return sess.ClearWishlist(r.Context())
	})
}

// WishlistMoveToCart adds one unit to the cart and drops the wishlist entry.
func WishlistMoveToCart(sessions SessionSource, opts PricingOptions, logg *logger.Logger) http.HandlerFunc {
	opts = opts.withDefaults()
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		state, err := sess.MoveWishlistToCart(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			return nil, err
		}
		return moveToCartResponse{
			Cart: newCartView(state, sess.Catalog(), opts),
			From: sess.Wishlist(),
		}, nil
	})
}

// sessionHandler resolves the visitor session, runs fn and writes its result.
func sessionHandler(sessions SessionSource, logg *logger.Logger, fn func(*http.Request, *session.Session) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := visitorSession(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := fn(r, sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}
