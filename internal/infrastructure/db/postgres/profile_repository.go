package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khadamat/marketplace-api/internal/core/domain"
)

// ProfileRepository persists the public profiles created at signup.
type ProfileRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewProfileRepository(pool *pgxpool.Pool, timeout time.Duration) *ProfileRepository {
	return &ProfileRepository{pool: pool, timeout: timeout}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	const q = `
		INSERT INTO profiles (user_id, display_name, bio, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, q,
		profile.UserID, profile.DisplayName, profile.Bio, profile.Phone, profile.CreatedAt)
	if err != nil {
		return storeErr("create profile", err)
	}
	return nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	const q = `SELECT user_id, display_name, bio, phone, created_at FROM profiles WHERE user_id = $1`

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	var p domain.Profile
	err := r.pool.QueryRow(ctx, q, userID).Scan(&p.UserID, &p.DisplayName, &p.Bio, &p.Phone, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("find profile", err)
	}
	return &p, nil
}
