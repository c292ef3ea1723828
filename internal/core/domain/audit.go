package domain

import "time"

// AuditAction is the category label of an audit trail entry.
type AuditAction string

const (
	ActionProductCreate     AuditAction = "policy product create"
	ActionProductUpdate     AuditAction = "policy product update"
	ActionProductDelete     AuditAction = "policy product delete"
	ActionPolicyPurchase    AuditAction = "policy purchase"
	ActionPolicyCancel      AuditAction = "policy cancel"
	ActionClaimCreate       AuditAction = "claim create"
	ActionClaimStatusUpdate AuditAction = "claim status update"
	ActionClaimAssign       AuditAction = "claim assignment"
	ActionPaymentRecorded   AuditAction = "payment recorded"
	ActionUserRegistered    AuditAction = "user registered"
)

// AuditDetails is the tagged union of per-action payloads. Each variant
// carries the fields relevant to its action and reports which action it
// belongs to, so a payload can never be recorded under the wrong label.
type AuditDetails interface {
	AuditAction() AuditAction
}

type ProductCreateDetails struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Code      string  `bson:"code" json:"code"`
	Premium   float64 `bson:"premium" json:"premium"`
}

type ProductUpdateDetails struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Code      string `bson:"code" json:"code"`
}

type ProductDeleteDetails struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Code      string `bson:"code" json:"code"`
}

type PolicyPurchaseDetails struct {
	UserPolicyID    string  `bson:"user_policy_id" json:"user_policy_id"`
	PolicyProductID string  `bson:"policy_product_id" json:"policy_product_id"`
	PremiumPaid     float64 `bson:"premium_paid" json:"premium_paid"`
}

type PolicyCancelDetails struct {
	UserPolicyID string `bson:"user_policy_id" json:"user_policy_id"`
}

type ClaimCreateDetails struct {
	ClaimID       string  `bson:"claim_id" json:"claim_id"`
	UserPolicyID  string  `bson:"user_policy_id" json:"user_policy_id"`
	AmountClaimed float64 `bson:"amount_claimed" json:"amount_claimed"`
}

type ClaimDecisionDetails struct {
	ClaimID string      `bson:"claim_id" json:"claim_id"`
	Status  ClaimStatus `bson:"status" json:"status"`
	Notes   string      `bson:"notes,omitempty" json:"notes,omitempty"`
}

type ClaimAssignDetails struct {
	ClaimID string `bson:"claim_id" json:"claim_id"`
	AgentID string `bson:"agent_id" json:"agent_id"`
}

type PaymentRecordedDetails struct {
	PaymentID     string        `bson:"payment_id" json:"payment_id"`
	UserPolicyID  string        `bson:"user_policy_id" json:"user_policy_id"`
	Amount        float64       `bson:"amount" json:"amount"`
	Method        PaymentMethod `bson:"method" json:"method"`
	TransactionID string        `bson:"transaction_id" json:"transaction_id"`
}

type UserRegisteredDetails struct {
	UserID string `bson:"user_id" json:"user_id"`
	Role   string `bson:"role" json:"role"`
}

func (ProductCreateDetails) AuditAction() AuditAction   { return ActionProductCreate }
func (ProductUpdateDetails) AuditAction() AuditAction   { return ActionProductUpdate }
func (ProductDeleteDetails) AuditAction() AuditAction   { return ActionProductDelete }
func (PolicyPurchaseDetails) AuditAction() AuditAction  { return ActionPolicyPurchase }
func (PolicyCancelDetails) AuditAction() AuditAction    { return ActionPolicyCancel }
func (ClaimCreateDetails) AuditAction() AuditAction     { return ActionClaimCreate }
func (ClaimDecisionDetails) AuditAction() AuditAction   { return ActionClaimStatusUpdate }
func (ClaimAssignDetails) AuditAction() AuditAction     { return ActionClaimAssign }
func (PaymentRecordedDetails) AuditAction() AuditAction { return ActionPaymentRecorded }
func (UserRegisteredDetails) AuditAction() AuditAction  { return ActionUserRegistered }

// AuditEntry is a single immutable record of a privileged mutation. On the
// write path Details holds one of the typed payloads above; on the read path
// it holds the decoded document.
type AuditEntry struct {
	ID        string      `json:"id" bson:"_id,omitempty"`
	Action    AuditAction `json:"action" bson:"action"`
	ActorID   string      `json:"actor_id" bson:"actor_id"`
	Details   any         `json:"details,omitempty" bson:"details,omitempty"`
	IP        string      `json:"ip,omitempty" bson:"ip,omitempty"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}
