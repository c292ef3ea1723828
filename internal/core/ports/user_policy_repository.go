package ports

import (
	"context"
	"time"

	"github.com/insureline/policy-admin/internal/core/domain"
)

// UserPolicyRepository defines persistence operations for bound policies.
//
// The one-active-policy-per-(user, product) invariant is enforced here, not
// in application code: Insert must surface domain.ErrDuplicateActivePolicy
// when another ACTIVE policy already exists for the same pair (backed by a
// partial unique index), so two concurrent purchases cannot both succeed.
type UserPolicyRepository interface {
	Insert(ctx context.Context, p *domain.UserPolicy) error
	FindByID(ctx context.Context, id string) (*domain.UserPolicy, error)
	// ListByUser returns all policies for the user, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.UserPolicy, error)
	// CancelActive flips ACTIVE to CANCELLED in a single conditional update
	// and reports whether a document matched. A false return means the policy
	// was missing, not owned by userID, or no longer ACTIVE.
	CancelActive(ctx context.Context, id, userID string) (bool, error)
	// CountActiveByProduct counts ACTIVE policies bound to a product.
	CountActiveByProduct(ctx context.Context, productID string) (int64, error)
	// ExpireDue flips every ACTIVE policy whose end_date has passed to
	// EXPIRED, returning how many were updated.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}
