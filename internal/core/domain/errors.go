package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors form the closed taxonomy every service returns. The HTTP
// layer maps them to status codes centrally; services never touch transport
// concerns.

// Not found.
var (
	ErrProductNotFound    = errors.New("policy product not found")
	ErrUserPolicyNotFound = errors.New("user policy not found")
	ErrClaimNotFound      = errors.New("claim not found")
	ErrUserNotFound       = errors.New("user not found")
)

// Forbidden: the resource exists but is outside the principal's capability.
// Existence is always checked first, so a missing ID never surfaces as
// forbidden.
var ErrForbidden = errors.New("access forbidden")

// Conflict: valid request, invalid current state.
var (
	ErrDuplicateCode         = errors.New("policy product code already exists")
	ErrDuplicateActivePolicy = errors.New("an active policy for this product already exists")
	ErrAlreadyProcessed      = errors.New("claim already processed")
	ErrAlreadyCancelled      = errors.New("policy already cancelled")
	ErrCannotCancelExpired   = errors.New("cannot cancel an expired policy")
	ErrHasActiveBindings     = errors.New("product has active user policies")
	ErrCannotAssignProcessed = errors.New("cannot assign a processed claim")
	ErrDuplicatePayment      = errors.New("payment reference already recorded")
	ErrUserExists            = errors.New("user already exists")
)

// Invalid input: caller error, never retried.
var (
	ErrInvalidStatus           = errors.New("invalid claim status")
	ErrInvalidProduct          = errors.New("product requires a code and positive premium, term and sum insured")
	ErrInvalidNominee          = errors.New("nominee name and relation are required")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrInvalidDate             = errors.New("invalid date")
	ErrIncidentOutsideCoverage = errors.New("incident date outside policy coverage window")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrPolicyNotActive         = errors.New("user policy is not active")
	ErrInvalidAgent            = errors.New("assignee must be an agent or admin")
	ErrInvalidCredentials      = errors.New("invalid credentials")
)

// Upstream failure: an external collaborator declined.
var ErrPaymentFailed = errors.New("payment failed")

// PaymentFailure wraps ErrPaymentFailed with the processor's reason so the
// caller sees it verbatim.
func PaymentFailure(reason string) error {
	return fmt.Errorf("%w: %s", ErrPaymentFailed, reason)
}
