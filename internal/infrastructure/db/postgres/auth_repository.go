package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khadamat/marketplace-api/internal/core/domain"
)

const uniqueViolation = "23505"

// AuthRepository persists credentials in the users table. Every call is
// bounded by the configured query timeout.
type AuthRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewAuthRepository(pool *pgxpool.Pool, timeout time.Duration) *AuthRepository {
	return &AuthRepository{pool: pool, timeout: timeout}
}

const userColumns = `id, email, password_hash, role, suspended, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Suspended, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AuthRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	user, err := scanUser(r.pool.QueryRow(ctx, q, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("find user by email", err)
	}
	return user, nil
}

func (r *AuthRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	user, err := scanUser(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("find user by id", err)
	}
	return user, nil
}

func (r *AuthRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const q = `
		INSERT INTO users (email, password_hash, role, suspended, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	created, err := scanUser(r.pool.QueryRow(ctx, q,
		user.Email, user.PasswordHash, user.Role, user.Suspended, user.CreatedAt, user.UpdatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, storeErr("create user", err)
	}
	return created, nil
}

func (r *AuthRepository) SetSuspended(ctx context.Context, id string, suspended bool) error {
	const q = `UPDATE users SET suspended = $2, updated_at = now() WHERE id = $1`

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id, suspended)
	if err != nil {
		return storeErr("set suspended", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *AuthRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const q = `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id, passwordHash)
	if err != nil {
		return storeErr("update password", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *AuthRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storeErr("scan user", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}
