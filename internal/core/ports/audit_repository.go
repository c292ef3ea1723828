package ports

import (
	"context"
	"time"

	"github.com/insureline/policy-admin/internal/core/domain"
)

// ListAuditFilter carries the query parameters for reading the audit trail.
type ListAuditFilter struct {
	Action   string    // optional: substring, case-insensitive
	ActorID  string    // optional: exact match
	DateFrom time.Time // timestamp >= DateFrom
	DateTo   time.Time // timestamp < DateTo (service extends to end of day)
	Page     int
	Limit    int
}

// AuditRepository persists the append-only audit trail. There is no update
// or delete; entries are immutable once written.
type AuditRepository interface {
	Insert(ctx context.Context, e *domain.AuditEntry) error
	List(ctx context.Context, filter ListAuditFilter) ([]*domain.AuditEntry, int64, error)
}
