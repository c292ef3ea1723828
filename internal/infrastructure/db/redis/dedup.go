package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// PaymentDedup guards against replaying the same payment reference for one
// policy. Key format: payment:<user_policy_id>:<reference>
type PaymentDedup struct {
	client *redis.Client
}

// NewPaymentDedup creates a PaymentDedup wrapping the given Redis client.
func NewPaymentDedup(client *redis.Client) *PaymentDedup {
	return &PaymentDedup{client: client}
}

// Seen reports whether this reference has already been recorded for the policy.
func (d *PaymentDedup) Seen(ctx context.Context, userPolicyID, reference string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(userPolicyID, reference)).Result()
	if err != nil {
		return false, fmt.Errorf("payment dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the reference as seen (expires after dedupTTL).
func (d *PaymentDedup) Mark(ctx context.Context, userPolicyID, reference string) error {
	return d.client.Set(ctx, d.key(userPolicyID, reference), "1", dedupTTL).Err()
}

func (d *PaymentDedup) key(userPolicyID, reference string) string {
	return fmt.Sprintf("payment:%s:%s", userPolicyID, reference)
}
