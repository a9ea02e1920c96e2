package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountSuspended = errors.New("account suspended")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")
var ErrStoreUnavailable = errors.New("store unavailable")
var ErrTooManyAttempts = errors.New("too many login attempts")

// ValidRole reports whether role is one of the roles a user may hold.
func ValidRole(role string) bool {
	return role == RoleBuyer || role == RoleSeller || role == RoleAdmin
}

// SignupRole reports whether role may be chosen at self-registration.
// Admin accounts are provisioned out of band, never via signup.
func SignupRole(role string) bool {
	return role == RoleBuyer || role == RoleSeller
}

// NormalizeEmail lowercases and trims an email address. Every lookup and
// insert goes through this so uniqueness holds on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User models a credential record in the marketplace.
// Self-registered accounts start suspended until an admin activates them.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Suspended    bool      `json:"suspended"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile carries the public-facing identity attached to a user.
type Profile struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
