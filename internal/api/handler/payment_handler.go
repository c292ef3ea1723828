package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/insureline/policy-admin/internal/api/metrics"
	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// PaymentHandler handles HTTP requests for the payment ledger.
type PaymentHandler struct {
	payments ports.PaymentService
	audit    ports.AuditRecorder
}

func NewPaymentHandler(payments ports.PaymentService, audit ports.AuditRecorder) *PaymentHandler {
	return &PaymentHandler{payments: payments, audit: audit}
}

type recordPaymentRequest struct {
	UserPolicyID string  `json:"user_policy_id" validate:"required"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Method       string  `json:"method" validate:"required,oneof=CARD NETBANKING OFFLINE SIMULATED"`
	Reference    string  `json:"reference"`
}

// Record handles POST /v1/payments.
//
// @Summary      Record a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordPaymentRequest  true  "Payment details"
// @Success      201   {object}  domain.Payment
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/payments [post]
func (h *PaymentHandler) Record(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	payment, err := h.payments.Record(c.Request().Context(), p, ports.RecordPaymentInput{
		UserPolicyID: req.UserPolicyID,
		Amount:       req.Amount,
		Method:       domain.PaymentMethod(req.Method),
		Reference:    req.Reference,
	})
	metrics.PaymentProcessingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PaymentsRecordedTotal.WithLabelValues(req.Method, "failed").Inc()
		return err
	}
	metrics.PaymentsRecordedTotal.WithLabelValues(req.Method, "success").Inc()

	recordAudit(c, h.audit, p.ID, domain.PaymentRecordedDetails{
		PaymentID:     payment.ID,
		UserPolicyID:  payment.UserPolicyID,
		Amount:        payment.Amount,
		Method:        payment.Method,
		TransactionID: payment.TransactionID,
	})

	return c.JSON(http.StatusCreated, payment)
}

// List handles GET /v1/payments.
//
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string  false  "Target user (admin only)"
// @Success      200      {array}   domain.Payment
// @Failure      403      {object}  map[string]string
// @Router       /v1/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	payments, err := h.payments.ListForUser(c.Request().Context(), p, c.QueryParam("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}
