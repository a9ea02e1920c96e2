package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/khadamat/marketplace-api/internal/core/authz"
	"github.com/khadamat/marketplace-api/internal/core/domain"
	"github.com/khadamat/marketplace-api/internal/core/ports"
)

// CatalogService orchestrates service listings. The owning seller is
// loaded from the store first and only then handed to the authorizer, so
// every mutation goes through the same policy table.
type CatalogService struct {
	repo   ports.ServiceRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.ServiceRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

func (s *CatalogService) Create(ctx context.Context, claims *domain.SessionClaims, input ports.CreateServiceInput) (*domain.Service, error) {
	if d := authz.Authorize(claims, authz.Require(authz.ServiceCreate, "")); !d.Allowed {
		s.logger.Debug().Str("reason", d.Reason).Msg("service create denied")
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	svc := &domain.Service{
		SellerID:    claims.UserID,
		Title:       input.Title,
		TitleAr:     input.TitleAr,
		Description: input.Description,
		PriceSAR:    input.PriceSAR,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, svc)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("service_id", created.ID).Str("seller_id", created.SellerID).Msg("service created")
	return created, nil
}

// Get returns a listing. Active listings are readable without a session;
// a deactivated one is served only to its owner or an admin and reads as
// not-found for everyone else, so its existence is not revealed.
func (s *CatalogService) Get(ctx context.Context, claims *domain.SessionClaims, id string) (*domain.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		if d := authz.Authorize(claims, authz.SelfOrAdmin{OwnerID: svc.SellerID}); !d.Allowed {
			return nil, domain.ErrServiceNotFound
		}
	}
	return svc, nil
}

// List is public.
func (s *CatalogService) List(ctx context.Context, limit, offset int) ([]domain.Service, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *CatalogService) Update(ctx context.Context, claims *domain.SessionClaims, id string, input ports.UpdateServiceInput) (*domain.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d := authz.Authorize(claims, authz.Require(authz.ServiceUpdate, svc.SellerID)); !d.Allowed {
		s.logger.Debug().Str("service_id", id).Str("reason", d.Reason).Msg("service update denied")
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		svc.Title = *input.Title
	}
	if input.TitleAr != nil {
		svc.TitleAr = *input.TitleAr
	}
	if input.Description != nil {
		svc.Description = *input.Description
	}
	if input.PriceSAR != nil {
		svc.PriceSAR = *input.PriceSAR
	}
	if input.Active != nil {
		svc.Active = *input.Active
	}
	svc.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) Delete(ctx context.Context, claims *domain.SessionClaims, id string) error {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if d := authz.Authorize(claims, authz.Require(authz.ServiceDelete, svc.SellerID)); !d.Allowed {
		s.logger.Debug().Str("service_id", id).Str("reason", d.Reason).Msg("service delete denied")
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("service_id", id).Msg("service deleted")
	return nil
}
