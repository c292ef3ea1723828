package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/insureline/policy-admin/internal/core/authz"
	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

const incidentDateLayout = "2006-01-02"

// ClaimService drives the claim lifecycle. The single-decision invariant is
// enforced at the storage layer: Decide carries status=PENDING in its update
// filter, so a second decision never matches regardless of interleaving.
//
// Agent visibility follows one model everywhere: an agent sees and decides
// only claims assigned to them. decided_by_agent_id is recorded at decision
// time for traceability and never drives visibility.
type ClaimService struct {
	claims   ports.ClaimRepository
	policies ports.UserPolicyRepository
	clock    Clock
	logger   zerolog.Logger
}

func NewClaimService(
	claims ports.ClaimRepository,
	policies ports.UserPolicyRepository,
	clock Clock,
	logger zerolog.Logger,
) *ClaimService {
	return &ClaimService{claims: claims, policies: policies, clock: clock, logger: logger}
}

func (s *ClaimService) Create(ctx context.Context, p domain.Principal, in ports.CreateClaimInput) (*domain.Claim, error) {
	if !authz.Allow(p, authz.ClaimCreate, p.ID) {
		return nil, domain.ErrForbidden
	}

	policy, err := s.policies.FindByID(ctx, in.UserPolicyID)
	if err != nil {
		return nil, err
	}
	if policy.UserID != p.ID {
		return nil, domain.ErrForbidden
	}
	if policy.Status != domain.PolicyActive {
		return nil, domain.ErrPolicyNotActive
	}

	incident, err := time.Parse(incidentDateLayout, in.IncidentDate)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	if in.AmountClaimed <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !policy.InWindow(incident) {
		return nil, domain.ErrIncidentOutsideCoverage
	}

	claim := &domain.Claim{
		UserID:        p.ID,
		UserPolicyID:  policy.ID,
		IncidentDate:  incident,
		Description:   in.Description,
		AmountClaimed: in.AmountClaimed,
		Status:        domain.ClaimPending,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.claims.Insert(ctx, claim); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("claim_id", claim.ID).
		Str("user_policy_id", policy.ID).
		Float64("amount", claim.AmountClaimed).
		Msg("claim created")

	return claim, nil
}

func (s *ClaimService) UpdateStatus(ctx context.Context, p domain.Principal, claimID string, in ports.DecideClaimInput) (*domain.Claim, error) {
	if !domain.ValidClaimStatus(in.Status) {
		return nil, domain.ErrInvalidStatus
	}

	claim, err := s.claims.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if !authz.Allow(p, authz.ClaimDecide, "") {
		return nil, domain.ErrForbidden
	}
	if p.IsAgent() && claim.AssignedAgentID != p.ID {
		return nil, domain.ErrForbidden
	}
	if claim.Status != domain.ClaimPending {
		return nil, domain.ErrAlreadyProcessed
	}

	// decided_by is set exactly when the decision transition occurs;
	// re-stamping PENDING only refreshes the notes.
	decidedBy := ""
	if in.Status.IsDecision() {
		decidedBy = p.ID
	}

	matched, err := s.claims.Decide(ctx, claimID, in.Status, in.Notes, decidedBy)
	if err != nil {
		return nil, err
	}
	if !matched {
		// Lost the race: someone decided it between our read and write.
		if _, rerr := s.claims.FindByID(ctx, claimID); rerr != nil {
			return nil, rerr
		}
		return nil, domain.ErrAlreadyProcessed
	}

	claim.Status = in.Status
	claim.DecisionNotes = in.Notes
	claim.DecidedByAgentID = decidedBy

	s.logger.Info().
		Str("claim_id", claimID).
		Str("status", string(in.Status)).
		Str("decided_by", p.ID).
		Msg("claim status updated")

	return claim, nil
}

func (s *ClaimService) List(ctx context.Context, p domain.Principal, in ports.ListClaimsInput) (*ports.ClaimPage, error) {
	if !authz.Allow(p, authz.ClaimRead, p.ID) {
		return nil, domain.ErrForbidden
	}

	page, limit := ports.NormalizePage(in.Page, in.Limit)
	filter := ports.ListClaimsFilter{
		Status:    in.Status,
		DateFrom:  in.DateFrom,
		DateTo:    in.DateTo,
		AmountMin: in.AmountMin,
		AmountMax: in.AmountMax,
		Search:    in.Search,
		Page:      page,
		Limit:     limit,
	}

	// Base visibility by role; additional filters are conjunctive.
	switch p.Role {
	case domain.RoleCustomer:
		filter.UserID = p.ID
	case domain.RoleAgent:
		filter.AssignedAgentID = p.ID
	}

	items, total, err := s.claims.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ClaimPage{Items: items, Page: ports.NewPage(page, limit, total)}, nil
}

func (s *ClaimService) GetByID(ctx context.Context, p domain.Principal, claimID string) (*domain.Claim, error) {
	claim, err := s.claims.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if !authz.Allow(p, authz.ClaimRead, claim.UserID) {
		return nil, domain.ErrForbidden
	}
	if p.IsAgent() && claim.AssignedAgentID != p.ID {
		return nil, domain.ErrForbidden
	}
	return claim, nil
}
