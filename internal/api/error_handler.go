package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/insureline/policy-admin/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	// Not found.
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrUserPolicyNotFound),
		errors.Is(err, domain.ErrClaimNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, err.Error()

	// Authentication / authorization.
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"

	// Conflicts: valid request, invalid current state.
	case errors.Is(err, domain.ErrDuplicateCode),
		errors.Is(err, domain.ErrDuplicateActivePolicy),
		errors.Is(err, domain.ErrAlreadyProcessed),
		errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrCannotCancelExpired),
		errors.Is(err, domain.ErrHasActiveBindings),
		errors.Is(err, domain.ErrCannotAssignProcessed),
		errors.Is(err, domain.ErrDuplicatePayment),
		errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, err.Error()

	// Semantically invalid state transitions and payloads.
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrIncidentOutsideCoverage),
		errors.Is(err, domain.ErrPolicyNotActive),
		errors.Is(err, domain.ErrInvalidAgent):
		return http.StatusUnprocessableEntity, err.Error()

	// Malformed input.
	case errors.Is(err, domain.ErrInvalidProduct),
		errors.Is(err, domain.ErrInvalidNominee),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidPaymentMethod):
		return http.StatusBadRequest, err.Error()

	// The external processor declined; not the client's fault, not ours.
	case errors.Is(err, domain.ErrPaymentFailed):
		return http.StatusBadGateway, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
