package ports

import (
	"context"

	"github.com/insureline/policy-admin/internal/core/domain"
)

// RegisterInput carries a new account request. Role defaults to customer;
// creating an agent or admin account requires an admin principal.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Role     string
}

// AuthService handles registration and login. Token issuance mechanics stay
// here so the rest of the core only ever sees a Principal.
type AuthService interface {
	Register(ctx context.Context, actor *domain.Principal, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// ListUsers is admin-only.
	ListUsers(ctx context.Context, p domain.Principal) ([]*domain.User, error)
}
