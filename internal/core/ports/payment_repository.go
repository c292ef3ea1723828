package ports

import (
	"context"

	"github.com/insureline/policy-admin/internal/core/domain"
)

// PaymentRepository defines persistence for the payment ledger. Entries are
// append-only; there is deliberately no update or delete.
type PaymentRepository interface {
	Insert(ctx context.Context, p *domain.Payment) error
	// ListByUser returns the user's payments, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error)
}

// PaymentResult is what the external processor reports back.
type PaymentResult struct {
	Success       bool
	TransactionID string
	Reason        string // populated on failure
}

// PaymentProcessor is the pluggable gateway collaborator. The core treats it
// as a black box: it blocks until the processor answers or ctx is cancelled.
type PaymentProcessor interface {
	Process(ctx context.Context, amount float64, method domain.PaymentMethod, reference string) (*PaymentResult, error)
}

// PaymentDedup guards against recording the same payment reference twice for
// one policy. Seen is checked before the processor runs; Mark is called only
// after the ledger insert succeeds.
type PaymentDedup interface {
	Seen(ctx context.Context, userPolicyID, reference string) (bool, error)
	Mark(ctx context.Context, userPolicyID, reference string) error
}
