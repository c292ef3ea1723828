package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/insureline/policy-admin/internal/core/authz"
	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// AssignmentService routes unassigned pending claims to agents. Assignment
// is admin-only and never changes claim status; the PENDING requirement is
// enforced by the storage-layer conditional update.
type AssignmentService struct {
	claims ports.ClaimRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAssignmentService(claims ports.ClaimRepository, users ports.UserRepository, logger zerolog.Logger) *AssignmentService {
	return &AssignmentService{claims: claims, users: users, logger: logger}
}

func (s *AssignmentService) ListUnassigned(ctx context.Context, p domain.Principal) ([]*domain.Claim, error) {
	if !authz.Allow(p, authz.ClaimAssign, "") {
		return nil, domain.ErrForbidden
	}
	return s.claims.ListUnassigned(ctx)
}

func (s *AssignmentService) Assign(ctx context.Context, p domain.Principal, claimID, agentID string) (*domain.Claim, error) {
	if !authz.Allow(p, authz.ClaimAssign, "") {
		return nil, domain.ErrForbidden
	}

	claim, err := s.claims.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status != domain.ClaimPending {
		return nil, domain.ErrCannotAssignProcessed
	}

	agent, err := s.users.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if agent.Role != domain.RoleAgent && agent.Role != domain.RoleAdmin {
		return nil, domain.ErrInvalidAgent
	}

	matched, err := s.claims.Assign(ctx, claimID, agentID)
	if err != nil {
		return nil, err
	}
	if !matched {
		// Decided between our read and write.
		if _, rerr := s.claims.FindByID(ctx, claimID); rerr != nil {
			return nil, rerr
		}
		return nil, domain.ErrCannotAssignProcessed
	}

	claim.AssignedAgentID = agentID
	s.logger.Info().Str("claim_id", claimID).Str("agent_id", agentID).Str("assigned_by", p.ID).Msg("claim assigned")
	return claim, nil
}

func (s *AssignmentService) ListForAgent(ctx context.Context, p domain.Principal, agentID string) ([]*domain.Claim, error) {
	if agentID == "" {
		agentID = p.ID
	}
	// Agents may list their own queue; everything else is admin territory.
	if !p.IsAdmin() && !(p.IsAgent() && agentID == p.ID) {
		return nil, domain.ErrForbidden
	}
	return s.claims.ListByAgent(ctx, agentID)
}

func (s *AssignmentService) Workload(ctx context.Context, p domain.Principal) ([]ports.AgentWorkload, error) {
	if !authz.Allow(p, authz.ClaimAssign, "") {
		return nil, domain.ErrForbidden
	}

	counts, err := s.claims.CountPendingByAgent(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ports.AgentWorkload, 0, len(counts))
	for agentID, pending := range counts {
		out = append(out, ports.AgentWorkload{AgentID: agentID, Pending: pending})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AgentID < out[j].AgentID })
	return out, nil
}
