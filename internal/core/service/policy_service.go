package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/insureline/policy-admin/internal/core/authz"
	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// PolicyService binds catalog products to customers and drives cancellation.
// The one-active-policy-per-(customer, product) invariant lives in the
// storage layer: Insert fails with ErrDuplicateActivePolicy when the partial
// unique index rejects a second ACTIVE binding, so two concurrent purchases
// cannot both succeed.
type PolicyService struct {
	policies ports.UserPolicyRepository
	products ports.ProductRepository
	clock    Clock
	logger   zerolog.Logger
}

func NewPolicyService(
	policies ports.UserPolicyRepository,
	products ports.ProductRepository,
	clock Clock,
	logger zerolog.Logger,
) *PolicyService {
	return &PolicyService{policies: policies, products: products, clock: clock, logger: logger}
}

func (s *PolicyService) Purchase(ctx context.Context, p domain.Principal, in ports.PurchasePolicyInput) (*domain.UserPolicy, error) {
	if !authz.Allow(p, authz.PolicyPurchase, p.ID) {
		return nil, domain.ErrForbidden
	}

	product, err := s.products.FindByID(ctx, in.PolicyProductID)
	if err != nil {
		return nil, err
	}

	if in.Nominee.Name == "" || in.Nominee.Relation == "" {
		return nil, domain.ErrInvalidNominee
	}

	start := in.StartDate
	if start.IsZero() {
		start = s.clock.Now()
	}
	term := in.TermMonths
	if term <= 0 {
		term = product.TermMonths
	}

	policy := &domain.UserPolicy{
		UserID:          p.ID,
		PolicyProductID: product.ID,
		StartDate:       start,
		// Calendar-month arithmetic, not a fixed day count.
		EndDate:     start.AddDate(0, term, 0),
		PremiumPaid: product.Premium,
		Status:      domain.PolicyActive,
		Nominee: domain.Nominee{
			Name:     in.Nominee.Name,
			Relation: in.Nominee.Relation,
		},
		CreatedAt: s.clock.Now(),
	}

	if err := s.policies.Insert(ctx, policy); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_policy_id", policy.ID).
		Str("user_id", p.ID).
		Str("policy_product_id", product.ID).
		Msg("policy purchased")

	return policy, nil
}

func (s *PolicyService) Cancel(ctx context.Context, p domain.Principal, userPolicyID string) (*domain.UserPolicy, error) {
	policy, err := s.policies.FindByID(ctx, userPolicyID)
	if err != nil {
		return nil, err
	}
	if !authz.Allow(p, authz.PolicyCancel, policy.UserID) {
		return nil, domain.ErrForbidden
	}

	switch policy.Status {
	case domain.PolicyCancelled:
		return nil, domain.ErrAlreadyCancelled
	case domain.PolicyExpired:
		return nil, domain.ErrCannotCancelExpired
	}

	matched, err := s.policies.CancelActive(ctx, userPolicyID, policy.UserID)
	if err != nil {
		return nil, err
	}
	if !matched {
		// Lost a race: re-read to report the state that beat us.
		current, rerr := s.policies.FindByID(ctx, userPolicyID)
		if rerr != nil {
			return nil, rerr
		}
		if current.Status == domain.PolicyExpired {
			return nil, domain.ErrCannotCancelExpired
		}
		return nil, domain.ErrAlreadyCancelled
	}

	policy.Status = domain.PolicyCancelled
	s.logger.Info().Str("user_policy_id", userPolicyID).Str("user_id", policy.UserID).Msg("policy cancelled")
	return policy, nil
}

func (s *PolicyService) ListForUser(ctx context.Context, p domain.Principal, userID string) ([]*domain.UserPolicy, error) {
	if userID == "" {
		userID = p.ID
	}
	if !authz.Allow(p, authz.PolicyRead, userID) {
		return nil, domain.ErrForbidden
	}
	return s.policies.ListByUser(ctx, userID)
}
