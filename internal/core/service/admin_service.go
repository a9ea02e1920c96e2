package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/khadamat/marketplace-api/internal/core/domain"
	"github.com/khadamat/marketplace-api/internal/core/password"
	"github.com/khadamat/marketplace-api/internal/core/ports"
)

// AdminService implements the back-office credential operations. Route
// access is already gated to admins before these run; the methods
// themselves only validate their inputs against the store.
type AdminService struct {
	users  ports.AuthRepository
	logger zerolog.Logger
}

func NewAdminService(users ports.AuthRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, logger: logger}
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

// SetSuspended toggles account suspension. Activating a fresh signup and
// suspending a misbehaving account are the same operation. Sessions
// issued before a suspension stay valid until they expire.
func (s *AdminService) SetSuspended(ctx context.Context, userID string, suspended bool) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.SetSuspended(ctx, userID, suspended); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Bool("suspended", suspended).Msg("suspension updated")
	return nil
}

// ResetPassword replaces a user's credential with an admin-chosen one.
func (s *AdminService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("password reset by admin")
	return nil
}
