// Package token encodes session claims into signed, expiring JWTs and
// decodes them back. Decoding is pure: it never consults the credential
// store, so a token stays valid until its expiry regardless of what
// happened to the account after issuance.
package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/khadamat/marketplace-api/internal/core/domain"
)

// ErrExpired is returned when the token signature is fine but the
// embedded expiry has passed.
var ErrExpired = errors.New("token expired")

// ErrInvalid is returned for malformed, tampered or wrong-secret tokens,
// and for tokens missing required claims.
var ErrInvalid = errors.New("token invalid")

// sessionClaims is the wire shape of a session token.
type sessionClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a server-held HMAC secret.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode produces a signed token embedding the claims. IssuedAt and
// ExpiresAt on the input are authoritative; the caller sets the TTL.
func (c *Codec) Encode(claims domain.SessionClaims) (string, error) {
	sc := sessionClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sc)
	return t.SignedString(c.secret)
}

// Decode verifies the signature and expiry and returns the typed claims.
// Fails with ErrExpired past the embedded expiry and ErrInvalid for
// everything else, including tokens missing required fields.
func (c *Codec) Decode(tokenStr string) (*domain.SessionClaims, error) {
	sc := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, sc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !tkn.Valid {
		return nil, ErrInvalid
	}
	if sc.UserID == "" || sc.Email == "" || !domain.ValidRole(sc.Role) {
		return nil, ErrInvalid
	}
	if sc.IssuedAt == nil || sc.ExpiresAt == nil {
		return nil, ErrInvalid
	}

	return &domain.SessionClaims{
		UserID:    sc.UserID,
		Email:     sc.Email,
		Role:      sc.Role,
		IssuedAt:  sc.IssuedAt.Time,
		ExpiresAt: sc.ExpiresAt.Time,
	}, nil
}
