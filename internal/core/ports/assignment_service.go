package ports

import (
	"context"

	"github.com/insureline/policy-admin/internal/core/domain"
)

// AgentWorkload is one agent's share of the pending queue.
type AgentWorkload struct {
	AgentID string `json:"agent_id"`
	Pending int64  `json:"pending"`
}

// AssignmentService routes unassigned pending claims to agents. All
// operations are admin-only except ListForAgent, which an agent may call for
// themselves.
type AssignmentService interface {
	ListUnassigned(ctx context.Context, p domain.Principal) ([]*domain.Claim, error)
	Assign(ctx context.Context, p domain.Principal, claimID, agentID string) (*domain.Claim, error)
	ListForAgent(ctx context.Context, p domain.Principal, agentID string) ([]*domain.Claim, error)
	Workload(ctx context.Context, p domain.Principal) ([]AgentWorkload, error)
}
