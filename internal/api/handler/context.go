package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/insureline/policy-admin/internal/api/metrics"
	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// ctxPrincipal extracts the authenticated principal injected by the Auth
// middleware and performs a fast-fail check before any service call: both
// the subject and the role must be present — their absence means the
// middleware did not run or the token carried no identity.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	id, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if id == "" || role == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Principal{ID: id, Role: role}, nil
}

// recordAudit emits one audit entry for a completed privileged mutation and
// bumps the per-action counter. Best-effort by contract: the recorder never
// returns an error.
func recordAudit(c echo.Context, rec ports.AuditRecorder, actorID string, details domain.AuditDetails) {
	rec.Record(c.Request().Context(), actorID, c.RealIP(), details)
	metrics.AuditEntriesTotal.WithLabelValues(string(details.AuditAction())).Inc()
}
