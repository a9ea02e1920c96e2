package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/khadamat/marketplace-api/internal/core/authz"
	"github.com/khadamat/marketplace-api/internal/core/domain"
	"github.com/khadamat/marketplace-api/internal/core/ports"
)

// OrderService orchestrates orders. An order has two owning references:
// the buyer who placed it and the seller fulfilling it; reads accept
// either side, status updates only the seller.
type OrderService struct {
	orders   ports.OrderRepository
	services ports.ServiceRepository
	logger   zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, services ports.ServiceRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, services: services, logger: logger}
}

func (s *OrderService) Create(ctx context.Context, claims *domain.SessionClaims, input ports.CreateOrderInput) (*domain.Order, error) {
	if d := authz.Authorize(claims, authz.Require(authz.OrderCreate, "")); !d.Allowed {
		s.logger.Debug().Str("reason", d.Reason).Msg("order create denied")
		return nil, domain.ErrForbidden
	}

	svc, err := s.services.FindByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ServiceID:    svc.ID,
		BuyerID:      claims.UserID,
		SellerID:     svc.SellerID,
		Status:       domain.OrderPending,
		AmountSAR:    svc.PriceSAR,
		PaymentProof: input.PaymentProof,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", created.ID).Str("buyer_id", created.BuyerID).Str("seller_id", created.SellerID).Msg("order created")
	return created, nil
}

func (s *OrderService) Get(ctx context.Context, claims *domain.SessionClaims, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Either owning side may read; the policy grants admin override.
	buyerSide := authz.Authorize(claims, authz.Require(authz.OrderRead, order.BuyerID))
	sellerSide := authz.Authorize(claims, authz.Require(authz.OrderRead, order.SellerID))
	if !buyerSide.Allowed && !sellerSide.Allowed {
		s.logger.Debug().Str("order_id", id).Str("reason", buyerSide.Reason).Msg("order read denied")
		return nil, domain.ErrForbidden
	}

	return order, nil
}

// ListMine returns the caller's own orders from either side of the
// trade. No ownership authorization is needed beyond authentication
// because the query itself is scoped to the caller's id.
func (s *OrderService) ListMine(ctx context.Context, claims *domain.SessionClaims, limit, offset int) ([]domain.Order, error) {
	if claims.IsAnonymous() {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.orders.ListForUser(ctx, claims.UserID, limit, offset)
}

func (s *OrderService) UpdateStatus(ctx context.Context, claims *domain.SessionClaims, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d := authz.Authorize(claims, authz.Require(authz.OrderUpdate, order.SellerID)); !d.Allowed {
		s.logger.Debug().Str("order_id", id).Str("reason", d.Reason).Msg("order status update denied")
		return nil, domain.ErrForbidden
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()

	s.logger.Info().Str("order_id", id).Str("status", string(status)).Msg("order status updated")
	return order, nil
}
