package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// SimulatedProcessor is the stand-in payment gateway. Every attempt succeeds
// after an optional artificial delay, which makes the latency of a real
// gateway observable in local and load testing.
type SimulatedProcessor struct {
	delay  time.Duration
	logger zerolog.Logger
}

func NewSimulatedProcessor(delay time.Duration, logger zerolog.Logger) *SimulatedProcessor {
	return &SimulatedProcessor{delay: delay, logger: logger}
}

// Process waits out the configured delay and approves the payment with a
// fresh transaction id. Cancellation during the delay is respected.
func (p *SimulatedProcessor) Process(ctx context.Context, amount float64, method domain.PaymentMethod, reference string) (*ports.PaymentResult, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	txnID := uuid.NewString()
	p.logger.Debug().
		Str("transaction_id", txnID).
		Str("method", string(method)).
		Str("reference", reference).
		Float64("amount", amount).
		Msg("simulated payment approved")

	return &ports.PaymentResult{Success: true, TransactionID: txnID}, nil
}
