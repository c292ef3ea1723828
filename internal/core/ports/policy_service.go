package ports

import (
	"context"
	"time"

	"github.com/insureline/policy-admin/internal/core/domain"
)

// NomineeInput is the beneficiary declared at purchase time.
type NomineeInput struct {
	Name     string
	Relation string
}

// PurchasePolicyInput carries all data needed to bind a product to a
// customer. TermMonths overrides the product's term when > 0; otherwise the
// product term applies.
type PurchasePolicyInput struct {
	PolicyProductID string
	StartDate       time.Time
	TermMonths      int
	Nominee         NomineeInput
}

// PolicyService converts catalog products into bound customer policies and
// drives the ACTIVE → CANCELLED transition.
type PolicyService interface {
	Purchase(ctx context.Context, p domain.Principal, in PurchasePolicyInput) (*domain.UserPolicy, error)
	Cancel(ctx context.Context, p domain.Principal, userPolicyID string) (*domain.UserPolicy, error)
	// ListForUser returns the principal's own policies, newest first. Admins
	// may pass any userID; customers may only pass their own.
	ListForUser(ctx context.Context, p domain.Principal, userID string) ([]*domain.UserPolicy, error)
}
