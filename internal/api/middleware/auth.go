package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khadamat/marketplace-api/internal/api/metrics"
	"github.com/khadamat/marketplace-api/internal/api/session"
	"github.com/khadamat/marketplace-api/internal/core/domain"
)

// ClaimsKey is the echo context key holding the resolved session claims.
const ClaimsKey = "session_claims"

// Resolver turns a raw cookie value into session claims. Absent or
// unusable tokens resolve to Anonymous, never an error.
type Resolver interface {
	Resolve(cookieValue string) *domain.SessionClaims
}

// Auth is the route guard for protected routes: it resolves the session
// cookie and rejects anonymous requests with 401 before the handler runs.
func Auth(resolver Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := resolver.Resolve(session.Read(c))
			if claims.IsAnonymous() {
				metrics.AuthRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "يجب تسجيل الدخول أولاً")
			}
			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// OptionalAuth resolves the session when present but lets anonymous
// requests through, for routes that render differently when logged in.
func OptionalAuth(resolver Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims := resolver.Resolve(session.Read(c)); !claims.IsAnonymous() {
				c.Set(ClaimsKey, claims)
			}
			return next(c)
		}
	}
}
