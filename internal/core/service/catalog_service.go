package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/insureline/policy-admin/internal/core/authz"
	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// CatalogService manages the policy product catalog. Code uniqueness is
// enforced by the storage layer (unique index), so concurrent creates with
// the same code cannot both succeed.
type CatalogService struct {
	products ports.ProductRepository
	policies ports.UserPolicyRepository
	clock    Clock
	logger   zerolog.Logger
}

func NewCatalogService(
	products ports.ProductRepository,
	policies ports.UserPolicyRepository,
	clock Clock,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{products: products, policies: policies, clock: clock, logger: logger}
}

func (s *CatalogService) Create(ctx context.Context, p domain.Principal, in ports.CreateProductInput) (*domain.PolicyProduct, error) {
	if !authz.Allow(p, authz.ProductCreate, "") {
		return nil, domain.ErrForbidden
	}
	if in.Code == "" || in.Premium <= 0 || in.TermMonths <= 0 || in.MinSumInsured <= 0 {
		return nil, domain.ErrInvalidProduct
	}

	product := &domain.PolicyProduct{
		Code:          in.Code,
		Title:         in.Title,
		Description:   in.Description,
		Premium:       in.Premium,
		TermMonths:    in.TermMonths,
		MinSumInsured: in.MinSumInsured,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Str("code", product.Code).Msg("product created")
	return product, nil
}

func (s *CatalogService) Update(ctx context.Context, p domain.Principal, id string, in ports.UpdateProductInput) (*domain.PolicyProduct, error) {
	if !authz.Allow(p, authz.ProductUpdate, "") {
		return nil, domain.ErrForbidden
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Code != nil {
		product.Code = *in.Code
	}
	if in.Title != nil {
		product.Title = *in.Title
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Premium != nil {
		product.Premium = *in.Premium
	}
	if in.TermMonths != nil {
		product.TermMonths = *in.TermMonths
	}
	if in.MinSumInsured != nil {
		product.MinSumInsured = *in.MinSumInsured
	}

	if product.Code == "" || product.Premium <= 0 || product.TermMonths <= 0 || product.MinSumInsured <= 0 {
		return nil, domain.ErrInvalidProduct
	}

	// The unique index re-checks code collisions against all other records.
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Str("code", product.Code).Msg("product updated")
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if !authz.Allow(p, authz.ProductDelete, "") {
		return domain.ErrForbidden
	}

	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}

	active, err := s.policies.CountActiveByProduct(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.ErrHasActiveBindings
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *CatalogService) Get(ctx context.Context, p domain.Principal, id string) (*domain.PolicyProduct, error) {
	if !authz.Allow(p, authz.ProductRead, "") {
		return nil, domain.ErrForbidden
	}
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) List(ctx context.Context, p domain.Principal, in ports.ListProductsInput) (*ports.ProductPage, error) {
	if !authz.Allow(p, authz.ProductRead, "") {
		return nil, domain.ErrForbidden
	}

	page, limit := ports.NormalizePage(in.Page, in.Limit)
	items, total, err := s.products.List(ctx, ports.ListProductsFilter{
		Search: in.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ProductPage{Items: items, Page: ports.NewPage(page, limit, total)}, nil
}
