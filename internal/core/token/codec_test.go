package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/khadamat/marketplace-api/internal/core/domain"
)

func testClaims(ttl time.Duration) domain.SessionClaims {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.SessionClaims{
		UserID:    "user-1",
		Email:     "a@x.com",
		Role:      domain.RoleBuyer,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("secret")
	in := testClaims(time.Hour)

	tokenStr, err := codec.Encode(in)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	out, err := codec.Decode(tokenStr)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if out.UserID != in.UserID || out.Email != in.Email || out.Role != in.Role {
		t.Fatalf("claims did not round-trip: %+v", out)
	}
	if !out.IssuedAt.Equal(in.IssuedAt) || !out.ExpiresAt.Equal(in.ExpiresAt) {
		t.Fatalf("timestamps did not round-trip: %+v", out)
	}
}

func TestCodec_ExpiryBoundary(t *testing.T) {
	codec := NewCodec("secret")

	// Still inside the validity window.
	fresh := testClaims(time.Second)
	tokenStr, err := codec.Encode(fresh)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if _, err := codec.Decode(tokenStr); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}

	// One second past expiry.
	stale := testClaims(-time.Second)
	tokenStr, err = codec.Encode(stale)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if _, err := codec.Decode(tokenStr); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	tokenStr, err := NewCodec("secret-a").Encode(testClaims(time.Hour))
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if _, err := NewCodec("secret-b").Decode(tokenStr); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestCodec_Tampered(t *testing.T) {
	codec := NewCodec("secret")
	tokenStr, err := codec.Encode(testClaims(time.Hour))
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := codec.Decode(tampered); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestCodec_Garbage(t *testing.T) {
	codec := NewCodec("secret")
	if _, err := codec.Decode("not-a-token"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := codec.Decode(""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty token, got %v", err)
	}
}

func TestCodec_MissingClaims(t *testing.T) {
	// A structurally valid token without the uid claim must be rejected
	// after decode, not trusted at call sites.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@x.com",
		"role":  domain.RoleBuyer,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := raw.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := NewCodec("secret").Decode(signed); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestCodec_UnknownRole(t *testing.T) {
	codec := NewCodec("secret")
	claims := testClaims(time.Hour)
	claims.Role = "superuser"

	tokenStr, err := codec.Encode(claims)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if _, err := codec.Decode(tokenStr); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
