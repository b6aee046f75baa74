package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/session"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// SessionSource hands out the session of a visitor.
type SessionSource interface {
	Get(ctx context.Context, visitorID string) (*session.Session, error)
}

func visitorSession(r *http.Request, sessions SessionSource) (*session.Session, error) {
	if sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable")
	}
	visitorID := middleware.VisitorIDFromContext(r.Context())
	if visitorID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "visitor context missing")
	}
	return sessions.Get(r.Context(), visitorID)
}
