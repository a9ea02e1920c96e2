package ports

import (
	"context"
	"time"

	"github.com/khadamat/marketplace-api/internal/core/domain"
)

// SignupInput carries self-registration data. Role must be buyer or
// seller; accounts are always created suspended.
type SignupInput struct {
	Email       string
	Password    string
	Role        string
	DisplayName string
	Phone       string
}

// LoginResult bundles everything a transport needs to answer a
// successful login: the signed token, its absolute expiry for the cookie
// Max-Age, and the user with their profile for the response body.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Claims    domain.SessionClaims
	User      *domain.User
	Profile   *domain.Profile
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, *domain.Profile, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Resolve turns a raw cookie value into session claims. Absent,
	// malformed and expired tokens all resolve to Anonymous, never an error.
	Resolve(cookieValue string) *domain.SessionClaims
	Me(ctx context.Context, userID string) (*domain.User, *domain.Profile, error)
	// ChangePassword re-verifies the old password and re-checks live
	// suspension against the store rather than trusting the token snapshot.
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

// AdminService covers the back-office credential operations.
type AdminService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	SetSuspended(ctx context.Context, userID string, suspended bool) error
	ResetPassword(ctx context.Context, userID, newPassword string) error
}
