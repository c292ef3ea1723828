package domain

import "time"

// ClaimStatus is the decision state of a claim. PENDING is the only initial
// state; the transition to APPROVED or REJECTED happens at most once.
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "PENDING"
	ClaimApproved ClaimStatus = "APPROVED"
	ClaimRejected ClaimStatus = "REJECTED"
)

// ValidClaimStatus reports whether s is one of the three enum values.
func ValidClaimStatus(s ClaimStatus) bool {
	return s == ClaimPending || s == ClaimApproved || s == ClaimRejected
}

// IsDecision reports whether s represents a final decision.
func (s ClaimStatus) IsDecision() bool {
	return s == ClaimApproved || s == ClaimRejected
}

// Claim is a customer's request for payout against an active user policy.
// AssignedAgentID may only be set while the claim is PENDING;
// DecidedByAgentID is set exactly when the decision transition occurs.
type Claim struct {
	ID               string      `json:"id" bson:"_id,omitempty"`
	UserID           string      `json:"user_id" bson:"user_id"`
	UserPolicyID     string      `json:"user_policy_id" bson:"user_policy_id"`
	IncidentDate     time.Time   `json:"incident_date" bson:"incident_date"`
	Description      string      `json:"description" bson:"description"`
	AmountClaimed    float64     `json:"amount_claimed" bson:"amount_claimed"`
	Status           ClaimStatus `json:"status" bson:"status"`
	DecisionNotes    string      `json:"decision_notes,omitempty" bson:"decision_notes,omitempty"`
	AssignedAgentID  string      `json:"assigned_agent_id,omitempty" bson:"assigned_agent_id,omitempty"`
	DecidedByAgentID string      `json:"decided_by_agent_id,omitempty" bson:"decided_by_agent_id,omitempty"`
	CreatedAt        time.Time   `json:"created_at" bson:"created_at"`
}
