package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/khadamat/marketplace-api/internal/api/middleware"
	"github.com/khadamat/marketplace-api/internal/api/session"
	"github.com/khadamat/marketplace-api/internal/core/domain"
	"github.com/khadamat/marketplace-api/internal/core/ports"
)

type stubAuthService struct {
	signupFn         func(ctx context.Context, input ports.SignupInput) (*domain.User, *domain.Profile, error)
	loginFn          func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	meFn             func(ctx context.Context, userID string) (*domain.User, *domain.Profile, error)
	changePasswordFn func(ctx context.Context, userID, oldPassword, newPassword string) error
}

func (s *stubAuthService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, *domain.Profile, error) {
	return s.signupFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Resolve(cookieValue string) *domain.SessionClaims {
	return domain.Anonymous
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, *domain.Profile, error) {
	return s.meFn(ctx, userID)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, userID, oldPassword, newPassword)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, input ports.SignupInput) (*domain.User, *domain.Profile, error) {
			if input.Email != "seller@example.com" || input.Role != "seller" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: "u1", Email: input.Email, Role: input.Role, Suspended: true},
				&domain.Profile{UserID: "u1", DisplayName: input.DisplayName}, nil
		},
	}
	handler := NewAuthHandler(stub, session.NewTransport(false))

	req := jsonRequest(http.MethodPost, "/v1/auth/signup",
		`{"email":"seller@example.com","password":"secret1","role":"seller","display_name":"Aisha"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["suspended"] != true {
		t.Fatalf("new account must report suspended: %+v", user)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("signup must not set a session cookie")
	}
}

func TestAuthHandler_Signup_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, input ports.SignupInput) (*domain.User, *domain.Profile, error) {
			return nil, nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, session.NewTransport(false))

	req := jsonRequest(http.MethodPost, "/v1/auth/signup",
		`{"email":"dup@example.com","password":"secret1","role":"buyer","display_name":"Omar"}`)
	rec := httptest.NewRecorder()
	_ = handler.Signup(e.NewContext(req, rec))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_AdminRoleRejected(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, input ports.SignupInput) (*domain.User, *domain.Profile, error) {
			t.Fatalf("should not be called")
			return nil, nil, nil
		},
	}
	handler := NewAuthHandler(stub, session.NewTransport(false))

	req := jsonRequest(http.MethodPost, "/v1/auth/signup",
		`{"email":"a@example.com","password":"secret1","role":"admin","display_name":"Eve"}`)
	rec := httptest.NewRecorder()
	_ = handler.Signup(e.NewContext(req, rec))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	e := newTestEcho()
	expires := time.Now().Add(7 * 24 * time.Hour)
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{
				Token:     "token123",
				ExpiresAt: expires,
				User:      &domain.User{ID: "u1", Email: email, Role: "buyer"},
			}, nil
		},
	}
	handler := NewAuthHandler(stub, session.NewTransport(false))

	req := jsonRequest(http.MethodPost, "/v1/auth/login",
		`{"email":"buyer@example.com","password":"secret1"}`)
	rec := httptest.NewRecorder()
	if err := handler.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != session.CookieName {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}
	if cookies[0].Value != "token123" {
		t.Fatalf("unexpected cookie value: %s", cookies[0].Value)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	if cookies[0].SameSite != http.SameSiteLaxMode {
		t.Fatalf("session cookie must be SameSite=Lax")
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, found := resp["token"]; found {
		t.Fatalf("token must travel in the cookie only, not the body")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, session.NewTransport(false))

	req := jsonRequest(http.MethodPost, "/v1/auth/login",
		`{"email":"buyer@example.com","password":"wrong"}`)
	rec := httptest.NewRecorder()
	_ = handler.Login(e.NewContext(req, rec))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("failed login must not set a cookie")
	}
}

func TestAuthHandler_Login_Suspended(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrAccountSuspended
		},
	}
	handler := NewAuthHandler(stub, session.NewTransport(false))

	req := jsonRequest(http.MethodPost, "/v1/auth/login",
		`{"email":"frozen@example.com","password":"secret1"}`)
	rec := httptest.NewRecorder()
	_ = handler.Login(e.NewContext(req, rec))

	// A login attempt never authenticates the caller, so suspension is
	// still a 401, never a 403.
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["suspended"] != true {
		t.Fatalf("suspended flag missing from response: %+v", resp)
	}
	if resp["success"] != false {
		t.Fatalf("failure envelope must carry success=false: %+v", resp)
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrTooManyAttempts
		},
	}
	handler := NewAuthHandler(stub, session.NewTransport(false))

	req := jsonRequest(http.MethodPost, "/v1/auth/login",
		`{"email":"buyer@example.com","password":"secret1"}`)
	rec := httptest.NewRecorder()
	_ = handler.Login(e.NewContext(req, rec))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, session.NewTransport(false))

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	if err := handler.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != session.CookieName {
		t.Fatalf("expected clearing cookie, got %+v", cookies)
	}
	if cookies[0].MaxAge != -1 {
		t.Fatalf("logout cookie must expire immediately, got MaxAge=%d", cookies[0].MaxAge)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.User, *domain.Profile, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &domain.User{ID: "u1", Email: "a@example.com", Role: "buyer"},
				&domain.Profile{UserID: "u1", DisplayName: "Omar"}, nil
		},
	}
	handler := NewAuthHandler(stub, session.NewTransport(false))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ClaimsKey, &domain.SessionClaims{UserID: "u1", Email: "a@example.com", Role: "buyer"})

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Me_WithoutSession(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, session.NewTransport(false))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Me(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	e := newTestEcho()
	called := false
	stub := &stubAuthService{
		changePasswordFn: func(ctx context.Context, userID, oldPassword, newPassword string) error {
			called = true
			if userID != "u1" || oldPassword != "old-secret" || newPassword != "new-secret" {
				t.Fatalf("unexpected args: %s %s %s", userID, oldPassword, newPassword)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub, session.NewTransport(false))

	req := jsonRequest(http.MethodPut, "/v1/me/password",
		`{"old_password":"old-secret","new_password":"new-secret"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ClaimsKey, &domain.SessionClaims{UserID: "u1", Email: "a@example.com", Role: "buyer"})

	if err := handler.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
