package ports

import (
	"context"

	"github.com/insureline/policy-admin/internal/core/domain"
)

// UserRepository defines persistence for accounts. Insert must surface
// domain.ErrUserExists on a username collision.
type UserRepository interface {
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
