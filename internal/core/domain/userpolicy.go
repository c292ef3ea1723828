package domain

import "time"

// UserPolicyStatus is the lifecycle state of a customer's bound policy.
type UserPolicyStatus string

const (
	PolicyActive    UserPolicyStatus = "ACTIVE"
	PolicyCancelled UserPolicyStatus = "CANCELLED"
	PolicyExpired   UserPolicyStatus = "EXPIRED"
)

// ACTIVE is the only state with outgoing transitions: a customer may cancel
// it, and the expiry sweeper flips it to EXPIRED once the coverage window
// closes. CANCELLED and EXPIRED are terminal.

// Nominee is the beneficiary declared at purchase time.
type Nominee struct {
	Name     string `json:"name" bson:"name"`
	Relation string `json:"relation" bson:"relation"`
}

// UserPolicy is a customer's bound instance of a PolicyProduct. PremiumPaid
// is copied from the product at purchase time so later catalog edits never
// change what the customer agreed to.
type UserPolicy struct {
	ID              string           `json:"id" bson:"_id,omitempty"`
	UserID          string           `json:"user_id" bson:"user_id"`
	PolicyProductID string           `json:"policy_product_id" bson:"policy_product_id"`
	StartDate       time.Time        `json:"start_date" bson:"start_date"`
	EndDate         time.Time        `json:"end_date" bson:"end_date"`
	PremiumPaid     float64          `json:"premium_paid" bson:"premium_paid"`
	Status          UserPolicyStatus `json:"status" bson:"status"`
	AssignedAgentID string           `json:"assigned_agent_id,omitempty" bson:"assigned_agent_id,omitempty"`
	Nominee         Nominee          `json:"nominee" bson:"nominee"`
	CreatedAt       time.Time        `json:"created_at" bson:"created_at"`
}

// InWindow reports whether t falls inside the policy's coverage window.
func (p *UserPolicy) InWindow(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}
