package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// AssignmentHandler handles HTTP requests for routing claims to agents.
type AssignmentHandler struct {
	assignments ports.AssignmentService
	audit       ports.AuditRecorder
}

func NewAssignmentHandler(assignments ports.AssignmentService, audit ports.AuditRecorder) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, audit: audit}
}

// ListUnassigned handles GET /v1/claims/unassigned.
//
// @Summary      List unassigned pending claims
// @Tags         assignment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Claim
// @Failure      403  {object}  map[string]string
// @Router       /v1/claims/unassigned [get]
func (h *AssignmentHandler) ListUnassigned(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	claims, err := h.assignments.ListUnassigned(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claims)
}

// Assign handles POST /v1/claims/:id/assign.
//
// @Summary      Assign a claim to an agent
// @Tags         assignment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Claim id"
// @Param        body  body      assignClaimRequest  true  "Assignee"
// @Success      200   {object}  domain.Claim
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/claims/{id}/assign [post]
func (h *AssignmentHandler) Assign(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req assignClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claim, err := h.assignments.Assign(c.Request().Context(), p, c.Param("id"), req.AgentID)
	if err != nil {
		return err
	}

	recordAudit(c, h.audit, p.ID, domain.ClaimAssignDetails{ClaimID: claim.ID, AgentID: req.AgentID})

	return c.JSON(http.StatusOK, claim)
}

// ListForAgent handles GET /v1/agents/:id/claims.
//
// @Summary      List an agent's claim queue
// @Tags         assignment
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Agent id, or 'me'"
// @Success      200  {array}   domain.Claim
// @Failure      403  {object}  map[string]string
// @Router       /v1/agents/{id}/claims [get]
func (h *AssignmentHandler) ListForAgent(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	agentID := c.Param("id")
	if agentID == "me" {
		agentID = p.ID
	}

	claims, err := h.assignments.ListForAgent(c.Request().Context(), p, agentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claims)
}

// Workload handles GET /v1/agents/workload.
//
// @Summary      Pending claim counts per agent
// @Tags         assignment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.AgentWorkload
// @Failure      403  {object}  map[string]string
// @Router       /v1/agents/workload [get]
func (h *AssignmentHandler) Workload(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	workload, err := h.assignments.Workload(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workload)
}
