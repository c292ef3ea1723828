package ports

import (
	"context"

	"github.com/insureline/policy-admin/internal/core/domain"
)

// RecordPaymentInput carries all data needed to record a payment attempt.
type RecordPaymentInput struct {
	UserPolicyID string
	Amount       float64
	Method       domain.PaymentMethod
	Reference    string
}

// PaymentService records payment attempts against a user policy, delegating
// outcome determination to the external PaymentProcessor. Nothing is
// persisted when the processor declines.
type PaymentService interface {
	Record(ctx context.Context, p domain.Principal, in RecordPaymentInput) (*domain.Payment, error)
	ListForUser(ctx context.Context, p domain.Principal, userID string) ([]*domain.Payment, error)
}
