package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/internal/session"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// VisitorIDHeader carries the anonymous visitor id in both directions.
const VisitorIDHeader = "X-Visitor-Id"

// Visitor scopes the request to a visitor. Requests without the header get a
// fresh id, echoed back so the client can keep it.
func Visitor(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID := strings.TrimSpace(r.Header.Get(VisitorIDHeader))
			if visitorID == "" {
				visitorID = uuid.NewString()
			}
			if err := session.ValidateVisitorID(visitorID); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			w.Header().Set(VisitorIDHeader, visitorID)

			ctx := WithVisitorID(r.Context(), visitorID)
			if logg != nil {
				ctx = logg.WithVisitorID(ctx, visitorID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
