package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/internal/session"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

func RecentFetch(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		return sess.Recent(), nil
	})
}

func RecentClear(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		return sess.ClearRecent(r.Context())
	})
}
