package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/khadamat/marketplace-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_TaxonomyStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"suspended", domain.ErrAccountSuspended, http.StatusUnauthorized},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"duplicate email", domain.ErrUserExists, http.StatusConflict},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"store unavailable", domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if body["success"] != false {
				t.Fatalf("error envelope must carry success=false: %+v", body)
			}
			if body["error"] == "" || body["error"] == nil {
				t.Fatalf("error envelope must carry a message: %+v", body)
			}
		})
	}
}

// Suspension is the one login failure surfaced distinctly, but it stays
// a 401 like any other failed login.
func TestErrorHandler_SuspendedCarriesFlag(t *testing.T) {
	code, body := renderError(t, domain.ErrAccountSuspended)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if body["suspended"] != true {
		t.Fatalf("suspended flag missing: %+v", body)
	}
}

func TestErrorHandler_WrappedStoreError(t *testing.T) {
	wrapped := errors.Join(domain.ErrStoreUnavailable, errors.New("dial tcp: timeout"))
	code, body := renderError(t, wrapped)
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if body["error"] == "dial tcp: timeout" {
		t.Fatalf("internal detail leaked to the client: %+v", body)
	}
}

func TestErrorHandler_UnexpectedHidesDetail(t *testing.T) {
	_, body := renderError(t, errors.New("pq: column does not exist"))
	if body["error"] == "pq: column does not exist" {
		t.Fatalf("internal detail leaked to the client: %+v", body)
	}
}
