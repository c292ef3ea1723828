package ports

import (
	"context"

	"github.com/insureline/policy-admin/internal/core/domain"
)

// CreateProductInput carries all data needed to create a catalog product.
type CreateProductInput struct {
	Code          string
	Title         string
	Description   string
	Premium       float64
	TermMonths    int
	MinSumInsured float64
}

// UpdateProductInput is a patch: nil fields are left untouched.
type UpdateProductInput struct {
	Code          *string
	Title         *string
	Description   *string
	Premium       *float64
	TermMonths    *int
	MinSumInsured *float64
}

// ListProductsInput carries list parameters from the transport layer.
type ListProductsInput struct {
	Search string
	Page   int
	Limit  int
}

// ProductPage is a page of catalog products plus the pagination envelope.
type ProductPage struct {
	Items []*domain.PolicyProduct
	Page  Page
}

// CatalogService manages the admin-owned product catalog.
type CatalogService interface {
	Create(ctx context.Context, p domain.Principal, in CreateProductInput) (*domain.PolicyProduct, error)
	Update(ctx context.Context, p domain.Principal, id string, in UpdateProductInput) (*domain.PolicyProduct, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
	Get(ctx context.Context, p domain.Principal, id string) (*domain.PolicyProduct, error)
	List(ctx context.Context, p domain.Principal, in ListProductsInput) (*ProductPage, error)
}
