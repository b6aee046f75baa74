package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/location"
	"github.com/angelmondragon/storefront-backend/internal/session"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// Field rules beyond presence live on location.Profile.
type locationRequest struct {
	Label   string `json:"label" validate:"required"`
	Pincode string `json:"pincode" validate:"required"`
	Address string `json:"address"`
}

type locationView struct {
	Profile *location.Profile `json:"profile"`
}

func LocationFetch(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		profile, ok := sess.Location()
		if !ok {
			return locationView{}, nil
		}
		return locationView{Profile: &profile}, nil
	})
}

func LocationSet(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		var payload locationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		profile, err := sess.SetLocation(r.Context(), location.Profile{
			Label:   payload.Label,
			Pincode: payload.Pincode,
			Address: payload.Address,
		})
		if err != nil {
			return nil, err
		}
		return locationView{Profile: &profile}, nil
	})
}

func LocationClear(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := visitorSession(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := sess.ClearLocation(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// DeliveryCheck resolves a pincode. A newer check from the same visitor
// supersedes this one, which then fails as canceled.
func DeliveryCheck(sessions SessionSource, opts PricingOptions, logg *logger.Logger) http.HandlerFunc {
	opts = opts.withDefaults()
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		est, err := sess.CheckDelivery(r.Context(), chi.URLParam(r, "pincode"))
		if err != nil {
			return nil, err
		}
		return newDeliveryView(est, opts.Now()), nil
	})
}
