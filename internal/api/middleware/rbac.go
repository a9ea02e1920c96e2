package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khadamat/marketplace-api/internal/api/metrics"
	"github.com/khadamat/marketplace-api/internal/core/authz"
	"github.com/khadamat/marketplace-api/internal/core/domain"
)

// RBAC enforces a coarse role gate after the Auth guard has run. Admin
// passes only when listed; fine-grained ownership checks stay in the
// service layer behind the policy table.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(ClaimsKey).(*domain.SessionClaims)
			if claims.IsAnonymous() {
				metrics.AuthRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "يجب تسجيل الدخول أولاً")
			}

			if d := authz.Authorize(claims, authz.RoleIn{Roles: allowedRoles}); !d.Allowed {
				metrics.AuthzDenialsTotal.WithLabelValues("role").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "غير مصرح لك بتنفيذ هذا الإجراء")
			}
			return next(c)
		}
	}
}
