package service

import (
	"context"
	"errors"
	"testing"

	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

func TestAuditRecord(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, testClock(), discardLogger)

	svc.Record(context.Background(), adminP.ID, "10.0.0.1", domain.ClaimAssignDetails{ClaimID: "clm-1", AgentID: agentP.ID})

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	e := repo.entries[0]
	if e.Action != domain.ActionClaimAssign {
		t.Errorf("action derived from the payload type, got %q", e.Action)
	}
	if e.ActorID != adminP.ID || e.IP != "10.0.0.1" {
		t.Errorf("actor/ip not carried: %+v", e)
	}
	if !e.Timestamp.Equal(testNow) {
		t.Errorf("timestamp must come from the clock, got %v", e.Timestamp)
	}
}

// Audit recording is best-effort: a failing store never reaches the caller.
func TestAuditRecord_InsertFailureSwallowed(t *testing.T) {
	repo := &stubAuditRepo{insertErr: errors.New("collection gone")}
	svc := NewAuditService(repo, testClock(), discardLogger)

	svc.Record(context.Background(), adminP.ID, "", domain.PolicyCancelDetails{UserPolicyID: "pol-1"})

	if len(repo.entries) != 0 {
		t.Fatal("nothing should be stored")
	}
}

func TestAuditList_AdminOnly(t *testing.T) {
	svc := NewAuditService(&stubAuditRepo{}, testClock(), discardLogger)

	for _, p := range []domain.Principal{customerP, agentP} {
		if _, err := svc.List(context.Background(), p, ports.ListAuditFilter{}); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("role %s: expected ErrForbidden, got: %v", p.Role, err)
		}
	}
}

func TestAuditList_ActionSubstring(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, testClock(), discardLogger)

	svc.Record(context.Background(), adminP.ID, "", domain.ProductCreateDetails{ProductID: "prod-1", Code: "HEALTH-001"})
	svc.Record(context.Background(), customerP.ID, "", domain.PolicyPurchaseDetails{UserPolicyID: "pol-1"})
	svc.Record(context.Background(), customerP.ID, "", domain.ClaimCreateDetails{ClaimID: "clm-1"})

	page, err := svc.List(context.Background(), adminP, ports.ListAuditFilter{Action: "POLICY"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// Matches "policy product create" and "policy purchase", not "claim create".
	if page.Page.Total != 2 {
		t.Errorf("expected total 2, got %d", page.Page.Total)
	}
}

func TestAuditList_DateToInclusiveThroughEndOfDay(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, testClock(), discardLogger)

	// Recorded at testNow, 2024-06-15T12:00Z.
	svc.Record(context.Background(), adminP.ID, "", domain.UserRegisteredDetails{UserID: "usr-1", Role: domain.RoleCustomer})

	page, err := svc.List(context.Background(), adminP, ports.ListAuditFilter{DateTo: date(2024, 6, 15)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page.Total != 1 {
		t.Errorf("an entry later the same day must match, got total %d", page.Page.Total)
	}

	page, err = svc.List(context.Background(), adminP, ports.ListAuditFilter{DateTo: date(2024, 6, 14)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page.Total != 0 {
		t.Errorf("an earlier cutoff must exclude it, got total %d", page.Page.Total)
	}
}

func TestAuditList_ActorAndPagination(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, testClock(), discardLogger)

	for i := 0; i < 3; i++ {
		svc.Record(context.Background(), customerP.ID, "", domain.ClaimCreateDetails{ClaimID: "clm-x"})
	}
	svc.Record(context.Background(), otherCust.ID, "", domain.ClaimCreateDetails{ClaimID: "clm-y"})

	page, err := svc.List(context.Background(), adminP, ports.ListAuditFilter{ActorID: customerP.ID, Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page.Total != 3 || page.Page.Pages != 2 || len(page.Items) != 2 {
		t.Errorf("unexpected envelope: total=%d pages=%d items=%d", page.Page.Total, page.Page.Pages, len(page.Items))
	}
}
