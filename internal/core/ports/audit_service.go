package ports

import (
	"context"

	"github.com/insureline/policy-admin/internal/core/domain"
)

// AuditPage is a page of audit entries plus the pagination envelope.
type AuditPage struct {
	Items []*domain.AuditEntry
	Page  Page
}

// AuditRecorder is the write side of the audit trail. Record is best-effort
// and fire-and-forget: it never returns an error and never aborts the
// primary operation; failures are logged and dropped.
type AuditRecorder interface {
	Record(ctx context.Context, actorID, ip string, details domain.AuditDetails)
}

// AuditService is the full audit trail contract: the recorder plus the
// admin-only read side.
type AuditService interface {
	AuditRecorder
	List(ctx context.Context, p domain.Principal, filter ListAuditFilter) (*AuditPage, error)
}
