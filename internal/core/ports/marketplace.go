package ports

import (
	"context"

	"github.com/khadamat/marketplace-api/internal/core/domain"
)

// ServiceRepository persists seller service listings.
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	FindByID(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context, limit, offset int) ([]domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository persists buyer orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// UpdateServiceInput carries the mutable fields of a listing. Nil fields
// are left unchanged.
type UpdateServiceInput struct {
	Title       *string
	TitleAr     *string
	Description *string
	PriceSAR    *float64
	Active      *bool
}

// CreateServiceInput carries a new listing from the transport layer.
type CreateServiceInput struct {
	Title       string
	TitleAr     string
	Description string
	PriceSAR    float64
}

// CatalogService exposes listing operations. Mutations take the caller's
// claims and perform the ownership check before touching the store. Get
// takes them too: a deactivated listing is visible only to its owner and
// to admins, everyone else gets not-found.
type CatalogService interface {
	Create(ctx context.Context, claims *domain.SessionClaims, input CreateServiceInput) (*domain.Service, error)
	Get(ctx context.Context, claims *domain.SessionClaims, id string) (*domain.Service, error)
	List(ctx context.Context, limit, offset int) ([]domain.Service, error)
	Update(ctx context.Context, claims *domain.SessionClaims, id string, input UpdateServiceInput) (*domain.Service, error)
	Delete(ctx context.Context, claims *domain.SessionClaims, id string) error
}

// CreateOrderInput carries a new order from the transport layer.
type CreateOrderInput struct {
	ServiceID    string
	PaymentProof string
}

// OrderService exposes order operations with per-action authorization.
type OrderService interface {
	Create(ctx context.Context, claims *domain.SessionClaims, input CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, claims *domain.SessionClaims, id string) (*domain.Order, error)
	ListMine(ctx context.Context, claims *domain.SessionClaims, limit, offset int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, claims *domain.SessionClaims, id string, status domain.OrderStatus) (*domain.Order, error)
}
