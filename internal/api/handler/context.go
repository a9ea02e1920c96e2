package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khadamat/marketplace-api/internal/api/middleware"
	"github.com/khadamat/marketplace-api/internal/core/domain"
)

// ctxClaims extracts the session claims injected by the Auth middleware
// and fails fast when a guarded handler is reached without them: a
// non-anonymous claims object proves the guard ran.
func ctxClaims(c echo.Context) (*domain.SessionClaims, error) {
	claims, _ := c.Get(middleware.ClaimsKey).(*domain.SessionClaims)
	if claims.IsAnonymous() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "يجب تسجيل الدخول أولاً")
	}
	return claims, nil
}

// ctxOptionalClaims returns the claims when a session is attached and
// Anonymous otherwise, for routes that serve both audiences.
func ctxOptionalClaims(c echo.Context) *domain.SessionClaims {
	claims, _ := c.Get(middleware.ClaimsKey).(*domain.SessionClaims)
	return claims
}
