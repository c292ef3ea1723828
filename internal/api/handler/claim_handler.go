package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/insureline/policy-admin/internal/api/metrics"
	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// ClaimHandler handles HTTP requests for the claim lifecycle.
type ClaimHandler struct {
	claims ports.ClaimService
	audit  ports.AuditRecorder
}

func NewClaimHandler(claims ports.ClaimService, audit ports.AuditRecorder) *ClaimHandler {
	return &ClaimHandler{claims: claims, audit: audit}
}

// Create handles POST /v1/claims.
//
// @Summary      File a claim
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClaimRequest  true  "Claim details"
// @Success      201   {object}  domain.Claim
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/claims [post]
func (h *ClaimHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claim, err := h.claims.Create(c.Request().Context(), p, ports.CreateClaimInput{
		UserPolicyID:  req.UserPolicyID,
		IncidentDate:  req.IncidentDate,
		Description:   req.Description,
		AmountClaimed: req.AmountClaimed,
	})
	if err != nil {
		return err
	}

	recordAudit(c, h.audit, p.ID, domain.ClaimCreateDetails{
		ClaimID:       claim.ID,
		UserPolicyID:  claim.UserPolicyID,
		AmountClaimed: claim.AmountClaimed,
	})
	metrics.ClaimsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, claim)
}

// UpdateStatus handles PUT /v1/claims/:id/status.
//
// @Summary      Decide a claim
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Claim id"
// @Param        body  body      decideClaimRequest  true  "New status"
// @Success      200   {object}  domain.Claim
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/claims/{id}/status [put]
func (h *ClaimHandler) UpdateStatus(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req decideClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claim, err := h.claims.UpdateStatus(c.Request().Context(), p, c.Param("id"), ports.DecideClaimInput{
		Status: domain.ClaimStatus(req.Status),
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}

	recordAudit(c, h.audit, p.ID, domain.ClaimDecisionDetails{
		ClaimID: claim.ID,
		Status:  claim.Status,
		Notes:   claim.DecisionNotes,
	})
	if claim.Status.IsDecision() {
		metrics.ClaimsDecidedTotal.WithLabelValues(string(claim.Status)).Inc()
	}

	return c.JSON(http.StatusOK, claim)
}

// Get handles GET /v1/claims/:id.
//
// @Summary      Get a claim
// @Tags         claims
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Claim id"
// @Success      200  {object}  domain.Claim
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/claims/{id} [get]
func (h *ClaimHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	claim, err := h.claims.GetByID(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claim)
}

// List handles GET /v1/claims.
//
// @Summary      List claims
// @Tags         claims
// @Produce      json
// @Security     BearerAuth
// @Param        status      query     string  false  "PENDING, APPROVED or REJECTED"
// @Param        date_from   query     string  false  "Filed on or after (YYYY-MM-DD)"
// @Param        date_to     query     string  false  "Filed on or before (YYYY-MM-DD)"
// @Param        amount_min  query     number  false  "Minimum claimed amount"
// @Param        amount_max  query     number  false  "Maximum claimed amount"
// @Param        search      query     string  false  "Matches description, status, or exact amount"
// @Param        page        query     int     false  "Page number (1-based)"
// @Param        limit       query     int     false  "Page size (max 100)"
// @Success      200         {object}  pageEnvelope
// @Router       /v1/claims [get]
func (h *ClaimHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	in, err := parseListClaimsQuery(c)
	if err != nil {
		return err
	}

	result, err := h.claims.List(c.Request().Context(), p, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pageEnvelope{Items: result.Items, Page: result.Page})
}

func parseListClaimsQuery(c echo.Context) (ports.ListClaimsInput, error) {
	in := ports.ListClaimsInput{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	}

	var err error
	if raw := c.QueryParam("date_from"); raw != "" {
		if in.DateFrom, err = time.Parse("2006-01-02", raw); err != nil {
			return in, domain.ErrInvalidDate
		}
	}
	if raw := c.QueryParam("date_to"); raw != "" {
		if in.DateTo, err = time.Parse("2006-01-02", raw); err != nil {
			return in, domain.ErrInvalidDate
		}
		// Inclusive through end of day.
		in.DateTo = in.DateTo.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	in.AmountMin, _ = strconv.ParseFloat(c.QueryParam("amount_min"), 64)
	in.AmountMax, _ = strconv.ParseFloat(c.QueryParam("amount_max"), 64)
	in.Page, _ = strconv.Atoi(c.QueryParam("page"))
	in.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	return in, nil
}
