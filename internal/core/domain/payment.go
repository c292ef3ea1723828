package domain

import "time"

// PaymentMethod identifies how a payment was made.
type PaymentMethod string

const (
	MethodCard       PaymentMethod = "CARD"
	MethodNetbanking PaymentMethod = "NETBANKING"
	MethodOffline    PaymentMethod = "OFFLINE"
	MethodSimulated  PaymentMethod = "SIMULATED"
)

// ValidPaymentMethod reports whether m is one of the four enum values.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCard, MethodNetbanking, MethodOffline, MethodSimulated:
		return true
	}
	return false
}

// Payment is a ledger entry recording a confirmed payment attempt against a
// user policy. Entries are immutable once created; there is no update or
// delete path.
type Payment struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	UserID        string        `json:"user_id" bson:"user_id"`
	UserPolicyID  string        `json:"user_policy_id" bson:"user_policy_id"`
	Amount        float64       `json:"amount" bson:"amount"`
	Method        PaymentMethod `json:"method" bson:"method"`
	Reference     string        `json:"reference" bson:"reference"`
	TransactionID string        `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
}
