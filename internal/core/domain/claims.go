package domain

import "time"

// SessionClaims is the identity snapshot embedded in a session token at
// login. It is never persisted server-side; a role or suspension change
// only takes effect on re-login, so callers that need live state must
// re-check it against the credential store.
type SessionClaims struct {
	UserID    string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsAnonymous reports whether the claims describe an unauthenticated
// request (missing, invalid or expired token).
func (c *SessionClaims) IsAnonymous() bool {
	return c == nil || c.UserID == ""
}

// IsAdmin reports whether the claims carry the admin role.
func (c *SessionClaims) IsAdmin() bool {
	return !c.IsAnonymous() && c.Role == RoleAdmin
}

// Anonymous is the resolution result for requests without a usable token.
var Anonymous *SessionClaims
