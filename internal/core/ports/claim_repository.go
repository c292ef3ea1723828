package ports

import (
	"context"
	"time"

	"github.com/insureline/policy-admin/internal/core/domain"
)

// ListClaimsFilter carries all query parameters for listing claims. The
// visibility scope (UserID for customers, AssignedAgentID for agents) is
// always injected by the service layer; the remaining filters are
// conjunctive. Search matches description/status case-insensitively and,
// when the term parses as a number, also matches amount_claimed exactly.
type ListClaimsFilter struct {
	UserID          string
	AssignedAgentID string
	Status          string
	DateFrom        time.Time // created_at >= DateFrom
	DateTo          time.Time // created_at <= DateTo
	AmountMin       float64   // amount_claimed >= AmountMin when > 0
	AmountMax       float64   // amount_claimed <= AmountMax when > 0
	Search          string
	Page            int
	Limit           int
}

// ClaimRepository defines persistence operations for claims.
//
// Decide and Assign are compare-and-swap updates: the PENDING requirement
// lives in the update filter, so a claim can never be decided twice or
// assigned after processing, regardless of interleaving. Both report whether
// a document matched; the service distinguishes NotFound from the Conflict
// case with a follow-up read.
type ClaimRepository interface {
	Insert(ctx context.Context, c *domain.Claim) error
	FindByID(ctx context.Context, id string) (*domain.Claim, error)
	List(ctx context.Context, filter ListClaimsFilter) ([]*domain.Claim, int64, error)
	// Decide sets status/decision_notes (and decided_by_agent_id when status
	// is a final decision) iff the claim is still PENDING.
	Decide(ctx context.Context, id string, status domain.ClaimStatus, notes, decidedBy string) (bool, error)
	// Assign sets assigned_agent_id iff the claim is still PENDING.
	Assign(ctx context.Context, id, agentID string) (bool, error)
	// ListUnassigned returns PENDING claims with no assigned agent, newest first.
	ListUnassigned(ctx context.Context) ([]*domain.Claim, error)
	// ListByAgent returns all claims assigned to the agent, any status.
	ListByAgent(ctx context.Context, agentID string) ([]*domain.Claim, error)
	// CountPendingByAgent returns the number of PENDING claims per assigned agent.
	CountPendingByAgent(ctx context.Context) (map[string]int64, error)
}
