package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/insureline/policy-admin/internal/api/metrics"
	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// PolicyHandler handles HTTP requests for bound customer policies.
type PolicyHandler struct {
	policies ports.PolicyService
	catalog  ports.CatalogService
	audit    ports.AuditRecorder
}

func NewPolicyHandler(policies ports.PolicyService, catalog ports.CatalogService, audit ports.AuditRecorder) *PolicyHandler {
	return &PolicyHandler{policies: policies, catalog: catalog, audit: audit}
}

type nomineeRequest struct {
	Name     string `json:"name" validate:"required"`
	Relation string `json:"relation" validate:"required"`
}

type purchasePolicyRequest struct {
	PolicyProductID string         `json:"policy_product_id" validate:"required"`
	StartDate       string         `json:"start_date"` // YYYY-MM-DD, defaults to today
	TermMonths      int            `json:"term_months" validate:"omitempty,gt=0"`
	Nominee         nomineeRequest `json:"nominee" validate:"required"`
}

// Purchase handles POST /v1/policies.
//
// @Summary      Purchase a policy
// @Tags         policies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      purchasePolicyRequest  true  "Purchase details"
// @Success      201   {object}  domain.UserPolicy
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/policies [post]
func (h *PolicyHandler) Purchase(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req purchasePolicyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var start time.Time
	if req.StartDate != "" {
		start, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return domain.ErrInvalidDate
		}
	}

	policy, err := h.policies.Purchase(c.Request().Context(), p, ports.PurchasePolicyInput{
		PolicyProductID: req.PolicyProductID,
		StartDate:       start,
		TermMonths:      req.TermMonths,
		Nominee:         ports.NomineeInput{Name: req.Nominee.Name, Relation: req.Nominee.Relation},
	})
	if err != nil {
		return err
	}

	recordAudit(c, h.audit, p.ID, domain.PolicyPurchaseDetails{
		UserPolicyID:    policy.ID,
		PolicyProductID: policy.PolicyProductID,
		PremiumPaid:     policy.PremiumPaid,
	})
	metrics.PoliciesPurchasedTotal.WithLabelValues(h.productCode(c, p, policy.PolicyProductID)).Inc()

	return c.JSON(http.StatusCreated, policy)
}

// Cancel handles POST /v1/policies/:id/cancel.
//
// @Summary      Cancel a policy
// @Tags         policies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User policy id"
// @Success      200  {object}  domain.UserPolicy
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/policies/{id}/cancel [post]
func (h *PolicyHandler) Cancel(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	policy, err := h.policies.Cancel(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}

	recordAudit(c, h.audit, p.ID, domain.PolicyCancelDetails{UserPolicyID: policy.ID})
	metrics.PoliciesCancelledTotal.Inc()

	return c.JSON(http.StatusOK, policy)
}

// List handles GET /v1/policies.
//
// @Summary      List policies
// @Tags         policies
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string  false  "Target user (admin only)"
// @Success      200      {array}   domain.UserPolicy
// @Failure      403      {object}  map[string]string
// @Router       /v1/policies [get]
func (h *PolicyHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	policies, err := h.policies.ListForUser(c.Request().Context(), p, c.QueryParam("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, policies)
}

// productCode resolves the catalog code for the purchase metric label. Label
// resolution must never fail the request, so lookup errors degrade to
// "unknown".
func (h *PolicyHandler) productCode(c echo.Context, p domain.Principal, productID string) string {
	product, err := h.catalog.Get(c.Request().Context(), p, productID)
	if err != nil {
		return "unknown"
	}
	return product.Code
}
