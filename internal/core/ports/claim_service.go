package ports

import (
	"context"
	"time"

	"github.com/insureline/policy-admin/internal/core/domain"
)

// CreateClaimInput carries all data needed to file a claim. IncidentDate is
// the raw string from the caller; the service owns parsing it so an
// unparsable date is reported as invalid input, not a transport error.
type CreateClaimInput struct {
	UserPolicyID  string
	IncidentDate  string // YYYY-MM-DD
	Description   string
	AmountClaimed float64
}

// DecideClaimInput carries the decision for a pending claim.
type DecideClaimInput struct {
	Status domain.ClaimStatus
	Notes  string
}

// ListClaimsInput carries list parameters from the transport layer. The
// service scopes visibility by the principal's role before applying filters.
type ListClaimsInput struct {
	Status    string
	DateFrom  time.Time
	DateTo    time.Time
	AmountMin float64
	AmountMax float64
	Search    string
	Page      int
	Limit     int
}

// ClaimPage is a page of claims plus the pagination envelope.
type ClaimPage struct {
	Items []*domain.Claim
	Page  Page
}

// ClaimService drives the claim lifecycle: creation against active policies
// and the one-way PENDING → APPROVED/REJECTED decision.
type ClaimService interface {
	Create(ctx context.Context, p domain.Principal, in CreateClaimInput) (*domain.Claim, error)
	UpdateStatus(ctx context.Context, p domain.Principal, claimID string, in DecideClaimInput) (*domain.Claim, error)
	List(ctx context.Context, p domain.Principal, in ListClaimsInput) (*ClaimPage, error)
	GetByID(ctx context.Context, p domain.Principal, claimID string) (*domain.Claim, error)
}
