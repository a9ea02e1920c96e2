package ports

import (
	"context"

	"github.com/khadamat/marketplace-api/internal/core/domain"
)

// AuthRepository defines the interface for credential persistence.
// Emails passed in are already normalized by the caller.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	SetSuspended(ctx context.Context, id string, suspended bool) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// ProfileRepository persists the public profile created alongside a
// credential at signup.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}

// LoginThrottle bounds repeated failed logins per account. Implementations
// fail open: an unavailable backend must not lock everyone out.
type LoginThrottle interface {
	TooManyAttempts(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Clear(ctx context.Context, email string) error
}
