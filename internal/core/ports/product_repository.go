package ports

import (
	"context"

	"github.com/insureline/policy-admin/internal/core/domain"
)

// ListProductsFilter carries the query parameters for listing catalog products.
type ListProductsFilter struct {
	Search string // optional: partial, case-insensitive match on code/title/description
	Page   int    // 1-based
	Limit  int
}

// ProductRepository defines persistence operations for catalog products.
// Insert and Update must surface domain.ErrDuplicateCode when the unique
// code constraint is violated, so races resolve at the storage layer.
type ProductRepository interface {
	Insert(ctx context.Context, p *domain.PolicyProduct) error
	FindByID(ctx context.Context, id string) (*domain.PolicyProduct, error)
	Update(ctx context.Context, p *domain.PolicyProduct) error
	Delete(ctx context.Context, id string) error
	// List returns a page of products ordered by created_at desc plus the total count.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.PolicyProduct, int64, error)
}
