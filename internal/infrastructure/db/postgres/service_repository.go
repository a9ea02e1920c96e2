package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khadamat/marketplace-api/internal/core/domain"
)

// ServiceRepository persists seller listings.
type ServiceRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewServiceRepository(pool *pgxpool.Pool, timeout time.Duration) *ServiceRepository {
	return &ServiceRepository{pool: pool, timeout: timeout}
}

const serviceColumns = `id, seller_id, title, title_ar, description, price_sar, active, created_at, updated_at`

func scanService(row pgx.Row) (*domain.Service, error) {
	var s domain.Service
	err := row.Scan(&s.ID, &s.SellerID, &s.Title, &s.TitleAr, &s.Description, &s.PriceSAR, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	const q = `
		INSERT INTO services (seller_id, title, title_ar, description, price_sar, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + serviceColumns

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	created, err := scanService(r.pool.QueryRow(ctx, q,
		svc.SellerID, svc.Title, svc.TitleAr, svc.Description, svc.PriceSAR, svc.Active, svc.CreatedAt, svc.UpdatedAt))
	if err != nil {
		return nil, storeErr("create service", err)
	}
	return created, nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*domain.Service, error) {
	const q = `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	svc, err := scanService(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, storeErr("find service", err)
	}
	return svc, nil
}

func (r *ServiceRepository) List(ctx context.Context, limit, offset int) ([]domain.Service, error) {
	const q = `SELECT ` + serviceColumns + ` FROM services WHERE active ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, storeErr("list services", err)
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, storeErr("scan service", err)
		}
		services = append(services, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list services", err)
	}
	return services, nil
}

func (r *ServiceRepository) Update(ctx context.Context, svc *domain.Service) error {
	const q = `
		UPDATE services
		SET title = $2, title_ar = $3, description = $4, price_sar = $5, active = $6, updated_at = $7
		WHERE id = $1`

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q,
		svc.ID, svc.Title, svc.TitleAr, svc.Description, svc.PriceSAR, svc.Active, svc.UpdatedAt)
	if err != nil {
		return storeErr("update service", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM services WHERE id = $1`

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return storeErr("delete service", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}
