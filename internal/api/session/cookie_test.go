package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestTransport_SetAndRead(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	tr := NewTransport(true)
	tr.Set(c, "token123", time.Now().Add(time.Hour))

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != CookieName || ck.Value != "token123" {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
	if !ck.HttpOnly || !ck.Secure || ck.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie attributes wrong: %+v", ck)
	}
	if ck.MaxAge <= 0 {
		t.Fatalf("cookie must carry a positive MaxAge, got %d", ck.MaxAge)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: ck.Value})
	c2 := e.NewContext(req, httptest.NewRecorder())
	if got := Read(c2); got != "token123" {
		t.Fatalf("Read returned %q", got)
	}
}

func TestTransport_Clear(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	NewTransport(false).Clear(c)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 || cookies[0].Value != "" {
		t.Fatalf("expected expired empty cookie, got %+v", cookies)
	}
}

func TestRead_MissingCookie(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if got := Read(c); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}
