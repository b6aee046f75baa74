package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/session"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=dark light"`
}

type themeView struct {
	Theme enums.Theme `json:"theme"`
}

func ThemeFetch(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		return themeView{Theme: sess.Theme()}, nil
	})
}

func ThemeSet(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		var payload themeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		theme, err := enums.ParseTheme(payload.Theme)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid theme")
		}
		theme, err = sess.SetTheme(r.Context(), theme)
		if err != nil {
			return nil, err
		}
		return themeView{Theme: theme}, nil
	})
}

func ThemeToggle(sessions SessionSource, logg *logger.Logger) http.HandlerFunc {
	return sessionHandler(sessions, logg, func(r *http.Request, sess *session.Session) (any, error) {
		theme, err := sess.ToggleTheme(r.Context())
		if err != nil {
			return nil, err
		}
		return themeView{Theme: theme}, nil
	})
}
