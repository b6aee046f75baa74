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

type alertCreateRequest struct {
	ProductID   string `json:"productId" validate:"required,max=64"`
	TargetPrice int64  `json:"targetPrice" validate:"required"`
}

// AlertsFetch lists the alerts together with those the catalog price already meets.
func AlertsFetch(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		return alertsView{
			Alerts:    sess.Alerts().Alerts,
			Triggered: sess.TriggeredAlerts(),
		}, nil
	})
}

func AlertsCreate(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := visitorSession(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload alertCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		alert, err := sess.CreateAlert(r.Context(), strings.TrimSpace(payload.ProductID), payload.TargetPrice)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, alert)
	}
}

func AlertsRemove(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		return sess.RemoveAlert(r.Context(), chi.URLParam(r, "alertId"))
	})
}

// AlertsRemoveForProduct drops every alert watching one product.
func AlertsRemoveForProduct(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		return sess.RemoveAlertsForProduct(r.Context(), chi.URLParam(r, "productId"))
	})
}

func AlertsClear(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		return sess.ClearAlerts(r.Context())
	})
}
