package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/saved"
	"github.com/angelmondragon/storefront-backend/internal/session"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type cartAddRequest struct {
	ProductID string `json:"productId" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=99"`
}

type cartQuantityRequest struct {
	// Zero removes the line.
	Quantity *int `json:"quantity" validate:"required,min=0,max=99"`
}

type saveForLaterResponse struct {
	Cart  cartView    `json:"cart"`
	Saved saved.State `json:"saved"`
}

// CartFetch returns the visitor's cart with its totals.
func CartFetch(sessions SessionSource, opts PricingOptions, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(sessions, opts, logg, func(r *http.Request, sess *session.Session) (cart.State, error) {
		return sess.Cart(), nil
	})
}

// CartAdd adds units of a product; quantity defaults to one.
func CartAdd(sessions SessionSource, opts PricingOptions, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(sessions, opts, logg, func(r *http.Request, sess *session.Session) (cart.State, error) {
		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return cart.State{}, err
		}
		if payload.Quantity == 0 {
			payload.Quantity = 1
		}
		return sess.AddToCart(r.Context(), strings.TrimSpace(payload.ProductID), payload.Quantity)
	})
}

func CartUpdateQuantity(sessions SessionSource, opts PricingOptions, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(sessions, opts, logg, func(r *http.Request, sess *session.Session) (cart.State, error) {
		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return cart.State{}, err
		}
		return sess.UpdateCartQuantity(r.Context(), chi.URLParam(r, "productId"), *payload.Quantity)
	})
}

func CartRemove(sessions SessionSource, opts PricingOptions, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(sessions, opts, logg, func(r *http.Request, sess *session.Session) (cart.State, error) {
		return sess.RemoveFromCart(r.Context(), chi.URLParam(r, "productId"))
	})
}

func CartClear(sessions SessionSource, opts PricingOptions, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(sessions, opts, logg, func(r *http.Request, sess *session.Session) (cart.State, error) {
		return sess.ClearCart(r.Context())
	})
}

// CartSaveForLater moves a cart line into the saved items.
func CartSaveForLater(sessions SessionSource, opts PricingOptions, logg *logger.Logger) http.HandlerFunc {
	opts = opts.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := visitorSession(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state, err := sess.SaveForLater(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saveForLaterResponse{
			Cart:  newCartView(state, sess.Catalog(), opts),
			Saved: sess.SavedItems(),
		})
	}
}

func cartHandler(sessions SessionSource, opts PricingOptions, logg *logger.Logger, fn func(*http.Request, *session.Session) (cart.State, error)) http.HandlerFunc {
	opts = opts.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := visitorSession(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state, err := fn(r, sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(state, sess.Catalog(), opts))
	}
}
