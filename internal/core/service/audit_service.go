package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/insureline/policy-admin/internal/core/authz"
	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// AuditService is the append-only audit trail. Recording is best-effort: a
// failed insert is logged and dropped, never surfaced to the caller, so the
// audit side channel can never abort a primary operation.
type AuditService struct {
	repo   ports.AuditRepository
	clock  Clock
	logger zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, clock Clock, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, clock: clock, logger: logger}
}

func (s *AuditService) Record(ctx context.Context, actorID, ip string, details domain.AuditDetails) {
	entry := &domain.AuditEntry{
		Action:    details.AuditAction(),
		ActorID:   actorID,
		Details:   details,
		IP:        ip,
		Timestamp: s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Warn().Err(err).
			Str("action", string(entry.Action)).
			Str("actor_id", actorID).
			Msg("failed to record audit entry")
	}
}

func (s *AuditService) List(ctx context.Context, p domain.Principal, filter ports.ListAuditFilter) (*ports.AuditPage, error) {
	if !authz.Allow(p, authz.AuditRead, "") {
		return nil, domain.ErrForbidden
	}

	page, limit := ports.NormalizePage(filter.Page, filter.Limit)
	filter.Page = page
	filter.Limit = limit

	// DateTo is inclusive through end of day: callers send a date, the
	// repository filters timestamp < the following midnight.
	if !filter.DateTo.IsZero() {
		filter.DateTo = filter.DateTo.Truncate(24 * time.Hour).AddDate(0, 0, 1)
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.AuditPage{Items: items, Page: ports.NewPage(page, limit, total)}, nil
}
