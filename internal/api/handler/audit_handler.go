package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// AuditHandler handles HTTP requests for reading the audit trail.
type AuditHandler struct {
	audit ports.AuditService
}

func NewAuditHandler(audit ports.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List handles GET /v1/audit.
//
// @Summary      List audit trail entries
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        action     query     string  false  "Substring match on the action label"
// @Param        actor_id   query     string  false  "Exact actor match"
// @Param        date_from  query     string  false  "On or after (YYYY-MM-DD)"
// @Param        date_to    query     string  false  "On or before (YYYY-MM-DD)"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200        {object}  pageEnvelope
// @Failure      403        {object}  map[string]string
// @Router       /v1/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	filter := ports.ListAuditFilter{
		Action:  c.QueryParam("action"),
		ActorID: c.QueryParam("actor_id"),
	}
	if raw := c.QueryParam("date_from"); raw != "" {
		if filter.DateFrom, err = time.Parse("2006-01-02", raw); err != nil {
			return domain.ErrInvalidDate
		}
	}
	if raw := c.QueryParam("date_to"); raw != "" {
		if filter.DateTo, err = time.Parse("2006-01-02", raw); err != nil {
			return domain.ErrInvalidDate
		}
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	result, err := h.audit.List(c.Request().Context(), p, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pageEnvelope{Items: result.Items, Page: result.Page})
}
