// Package session binds the encoded session token to its HTTP cookie.
package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the session cookie consumed by the route guard.
const CookieName = "auth-token"

// Transport writes and clears the session cookie. Secure is set per
// environment: required in production, off for local HTTP development.
type Transport struct {
	secure bool
}

func NewTransport(secure bool) *Transport {
	return &Transport{secure: secure}
}

// Set attaches the token to the response, valid until expiresAt.
func (t *Transport) Set(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		Expires:  expiresAt,
	})
}

// Clear expires the cookie immediately (logout).
func (t *Transport) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Read returns the raw token from the request, or "" when absent.
func Read(c echo.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
