package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/khadamat/marketplace-api/internal/core/domain"
	"github.com/khadamat/marketplace-api/internal/core/password"
	"github.com/khadamat/marketplace-api/internal/core/ports"
	"github.com/khadamat/marketplace-api/internal/core/token"
)

// AuthService implements signup, login and request-time identity
// resolution. Tokens are stateless: nothing is stored server-side at
// login and nothing is revoked before expiry, so a suspension takes
// effect on the next login or token expiry, whichever comes first.
type AuthService struct {
	users    ports.AuthRepository
	profiles ports.ProfileRepository
	throttle ports.LoginThrottle
	codec    *token.Codec
	tokenTTL time.Duration
	logger   zerolog.Logger
}

func NewAuthService(users ports.AuthRepository, profiles ports.ProfileRepository, throttle ports.LoginThrottle, codec *token.Codec, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		profiles: profiles,
		throttle: throttle,
		codec:    codec,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Signup creates a suspended account plus its profile. There is no
// auto-login: the account stays unusable until an admin activates it.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, *domain.Profile, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" || input.DisplayName == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !domain.SignupRole(input.Role) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		Suspended:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	profile := &domain.Profile{
		UserID:      created.ID,
		DisplayName: input.DisplayName,
		Phone:       input.Phone,
		CreatedAt:   now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("account created, pending activation")

	return created, profile, nil
}

// Login verifies the credential, rejects suspended accounts and issues a
// session token. Lookup and password failures both collapse to
// ErrInvalidCredentials so the response does not reveal which factor was
// wrong; suspension is the one distinct failure the UI may surface.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || pass == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if blocked, err := s.throttle.TooManyAttempts(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle unavailable, failing open")
	} else if blocked {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(pass, user.PasswordHash) {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("failed to record login failure")
		}
		return nil, domain.ErrInvalidCredentials
	}

	// Checked after password verification: only a legitimate caller
	// learns the account is suspended.
	if user.Suspended {
		return nil, domain.ErrAccountSuspended
	}

	now := time.Now().UTC()
	claims := domain.SessionClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.tokenTTL),
	}

	signed, err := s.codec.Encode(claims)
	if err != nil {
		return nil, err
	}

	if err := s.throttle.Clear(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear login throttle")
	}

	profile, err := s.profiles.FindByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")

	return &ports.LoginResult{
		Token:     signed,
		ExpiresAt: claims.ExpiresAt,
		Claims:    claims,
		User:      user,
		Profile:   profile,
	}, nil
}

// Resolve decodes a cookie value into session claims. A missing, expired
// or tampered token means "not logged in", never a request failure; the
// decode error is kept for logging only.
func (s *AuthService) Resolve(cookieValue string) *domain.SessionClaims {
	if cookieValue == "" {
		return domain.Anonymous
	}
	claims, err := s.codec.Decode(cookieValue)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			s.logger.Debug().Msg("expired session token presented")
		} else {
			s.logger.Warn().Msg("invalid session token presented")
		}
		return domain.Anonymous
	}
	return claims
}

// Me returns the live user record and profile for the session owner.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, *domain.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, err
	}
	return user, profile, nil
}

// ChangePassword re-verifies the old password and re-checks suspension
// against the store: a stale token must not be enough to rotate a
// credential on an account that was suspended after issuance.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Suspended {
		return domain.ErrAccountSuspended
	}
	if !password.Verify(oldPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("password changed")
	return nil
}
