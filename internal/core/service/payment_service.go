package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/insureline/policy-admin/internal/core/authz"
	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// PaymentService records payment attempts against a user policy. Outcome
// determination belongs to the external processor; on failure nothing is
// persisted. A Redis-backed dedup guard rejects replays of the same
// reference before the processor is even invoked.
type PaymentService struct {
	payments  ports.PaymentRepository
	policies  ports.UserPolicyRepository
	processor ports.PaymentProcessor
	dedup     ports.PaymentDedup
	clock     Clock
	logger    zerolog.Logger
}

func NewPaymentService(
	payments ports.PaymentRepository,
	policies ports.UserPolicyRepository,
	processor ports.PaymentProcessor,
	dedup ports.PaymentDedup,
	clock Clock,
	logger zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		payments:  payments,
		policies:  policies,
		processor: processor,
		dedup:     dedup,
		clock:     clock,
		logger:    logger,
	}
}

func (s *PaymentService) Record(ctx context.Context, p domain.Principal, in ports.RecordPaymentInput) (*domain.Payment, error) {
	policy, err := s.policies.FindByID(ctx, in.UserPolicyID)
	if err != nil {
		return nil, err
	}
	if !authz.Allow(p, authz.PaymentCreate, policy.UserID) {
		return nil, domain.ErrForbidden
	}

	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !domain.ValidPaymentMethod(in.Method) {
		return nil, domain.ErrInvalidPaymentMethod
	}

	reference := in.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	seen, err := s.dedup.Seen(ctx, policy.ID, reference)
	if err != nil {
		s.logger.Warn().Err(err).Str("reference", reference).Msg("payment dedup check failed, processing anyway")
	} else if seen {
		return nil, domain.ErrDuplicatePayment
	}

	result, err := s.processor.Process(ctx, in.Amount, in.Method, reference)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		s.logger.Warn().
			Str("user_policy_id", policy.ID).
			Str("reason", result.Reason).
			Msg("payment declined by processor")
		return nil, domain.PaymentFailure(result.Reason)
	}

	payment := &domain.Payment{
		UserID:        policy.UserID,
		UserPolicyID:  policy.ID,
		Amount:        in.Amount,
		Method:        in.Method,
		Reference:     reference,
		TransactionID: result.TransactionID,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.payments.Insert(ctx, payment); err != nil {
		return nil, err
	}

	// Mark only after the ledger insert so a failed insert stays retryable.
	if err := s.dedup.Mark(ctx, policy.ID, reference); err != nil {
		s.logger.Warn().Err(err).Str("reference", reference).Msg("failed to mark payment dedup key")
	}

	s.logger.Info().
		Str("payment_id", payment.ID).
		Str("user_policy_id", policy.ID).
		Str("transaction_id", payment.TransactionID).
		Float64("amount", payment.Amount).
		Msg("payment recorded")

	return payment, nil
}

func (s *PaymentService) ListForUser(ctx context.Context, p domain.Principal, userID string) ([]*domain.Payment, error) {
	if userID == "" {
		userID = p.ID
	}
	if !authz.Allow(p, authz.PaymentRead, userID) {
		return nil, domain.ErrForbidden
	}
	return s.payments.ListByUser(ctx, userID)
}
