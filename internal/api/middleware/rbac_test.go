package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/khadamat/marketplace-api/internal/core/domain"
)

func rbacContext(e *echo.Echo, rec *httptest.ResponseRecorder, claims *domain.SessionClaims) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(ClaimsKey, claims)
	}
	return c
}

func TestRBAC_Allows(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := rbacContext(e, rec, &domain.SessionClaims{UserID: "u1", Role: domain.RoleAdmin})

	called := false
	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRBAC_ForbidsWrongRole(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := rbacContext(e, rec, &domain.SessionClaims{UserID: "u1", Role: domain.RoleBuyer})

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

// Admin is not a wildcard: a role gate that names only seller must turn
// an admin away like anyone else.
func TestRBAC_AdminNotImplicit(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := rbacContext(e, rec, &domain.SessionClaims{UserID: "u1", Role: domain.RoleAdmin})

	handler := RBAC(domain.RoleSeller)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_AnonymousGetsUnauthorized(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := rbacContext(e, rec, nil)

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
