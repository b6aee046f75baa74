package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/session"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

func SavedFetch(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		return sess.SavedItems(), nil
	})
}

// SavedAdd saves a cart line for later; the product must be in the cart.
func SavedAdd(sessions SessionSource, opts PricingOptions, logg *logger.Logger) http.HandlerFunc {
	opts = opts.withDefaults()
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		var payload productRefRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		state, err := sess.SaveForLater(r.Context(), strings.TrimSpace(payload.ProductID))
		if err != nil {
			return nil, err
		}
		return saveForLaterResponse{
			Cart:  newCartView(state, sess.Catalog(), opts),
			Saved: sess.SavedItems(),
		}, nil
	})
}

func SavedRemove(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		return sess.RemoveSaved(r.Context(), chi.URLParam(r, "productId"))
	})
}

func SavedClear(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		return sess.ClearSaved(r.Context())
	})
}

func SavedMoveToCart(sessions SessionSource, opts PricingOptions, logg *logger.Logger) http.HandlerFunc {
	opts = opts.withDefaults()
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		state, err := sess.MoveSavedToCart(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			return nil, err
		}
		return moveToCartResponse{
			Cart: newCartView(state, sess.Catalog(), opts),
			From: sess.SavedItems(),
		}, nil
	})
}
