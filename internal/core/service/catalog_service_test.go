package service

import (
	"context"
	"errors"
	"testing"

	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

func newCatalogSvc(products *stubProductRepo, policies *stubPolicyRepo) *CatalogService {
	return NewCatalogService(products, policies, testClock(), discardLogger)
}

func healthProduct() ports.CreateProductInput {
	return ports.CreateProductInput{
		Code:          "HEALTH-001",
		Title:         "Health Shield",
		Description:   "Individual health cover",
		Premium:       5000,
		TermMonths:    12,
		MinSumInsured: 100000,
	}
}

func TestCatalogCreate_HappyPath(t *testing.T) {
	svc := newCatalogSvc(newStubProductRepo(), newStubPolicyRepo())

	p, err := svc.Create(context.Background(), adminP, healthProduct())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if p.ID == "" {
		t.Error("expected server-assigned id")
	}
	if !p.CreatedAt.Equal(testNow) {
		t.Errorf("expected created_at from clock, got %v", p.CreatedAt)
	}
}

func TestCatalogCreate_DuplicateCode(t *testing.T) {
	svc := newCatalogSvc(newStubProductRepo(), newStubPolicyRepo())

	if _, err := svc.Create(context.Background(), adminP, healthProduct()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), adminP, healthProduct())
	if !errors.Is(err, domain.ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got: %v", err)
	}
}

func TestCatalogCreate_NonAdminForbidden(t *testing.T) {
	svc := newCatalogSvc(newStubProductRepo(), newStubPolicyRepo())

	for _, p := range []domain.Principal{customerP, agentP} {
		if _, err := svc.Create(context.Background(), p, healthProduct()); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("role %s: expected ErrForbidden, got: %v", p.Role, err)
		}
	}
}

func TestCatalogCreate_InvalidDefinition(t *testing.T) {
	svc := newCatalogSvc(newStubProductRepo(), newStubPolicyRepo())

	in := healthProduct()
	in.Premium = 0
	if _, err := svc.Create(context.Background(), adminP, in); !errors.Is(err, domain.ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct, got: %v", err)
	}
}

func TestCatalogUpdate_CodeCollision(t *testing.T) {
	products := newStubProductRepo()
	svc := newCatalogSvc(products, newStubPolicyRepo())

	first, _ := svc.Create(context.Background(), adminP, healthProduct())
	second := healthProduct()
	second.Code = "LIFE-001"
	other, _ := svc.Create(context.Background(), adminP, second)

	code := first.Code
	_, err := svc.Update(context.Background(), adminP, other.ID, ports.UpdateProductInput{Code: &code})
	if !errors.Is(err, domain.ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got: %v", err)
	}
}

func TestCatalogUpdate_PatchLeavesOtherFields(t *testing.T) {
	svc := newCatalogSvc(newStubProductRepo(), newStubPolicyRepo())

	created, _ := svc.Create(context.Background(), adminP, healthProduct())
	premium := 7500.0
	updated, err := svc.Update(context.Background(), adminP, created.ID, ports.UpdateProductInput{Premium: &premium})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Premium != 7500 {
		t.Errorf("premium not patched: %v", updated.Premium)
	}
	if updated.Code != created.Code || updated.TermMonths != created.TermMonths {
		t.Error("unpatched fields must be untouched")
	}
}

// Scenario: deleting a product with an ACTIVE policy bound to it fails and
// the product remains.
func TestCatalogDelete_HasActiveBindings(t *testing.T) {
	products := newStubProductRepo()
	policies := newStubPolicyRepo()
	svc := newCatalogSvc(products, policies)

	created, _ := svc.Create(context.Background(), adminP, healthProduct())
	policies.Insert(context.Background(), &domain.UserPolicy{
		UserID:          customerP.ID,
		PolicyProductID: created.ID,
		Status:          domain.PolicyActive,
	})

	err := svc.Delete(context.Background(), adminP, created.ID)
	if !errors.Is(err, domain.ErrHasActiveBindings) {
		t.Fatalf("expected ErrHasActiveBindings, got: %v", err)
	}
	if _, err := products.FindByID(context.Background(), created.ID); err != nil {
		t.Error("product must remain after refused delete")
	}
}

func TestCatalogDelete_CancelledBindingsDoNotBlock(t *testing.T) {
	products := newStubProductRepo()
	policies := newStubPolicyRepo()
	svc := newCatalogSvc(products, policies)

	created, _ := svc.Create(context.Background(), adminP, healthProduct())
	policies.Insert(context.Background(), &domain.UserPolicy{
		UserID:          customerP.ID,
		PolicyProductID: created.ID,
		Status:          domain.PolicyCancelled,
	})

	if err := svc.Delete(context.Background(), adminP, created.ID); err != nil {
		t.Fatalf("expected delete to succeed, got: %v", err)
	}
}

func TestCatalogDelete_NotFound(t *testing.T) {
	svc := newCatalogSvc(newStubProductRepo(), newStubPolicyRepo())

	err := svc.Delete(context.Background(), adminP, "missing")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got: %v", err)
	}
}

func TestCatalogList_SearchAndPagination(t *testing.T) {
	svc := newCatalogSvc(newStubProductRepo(), newStubPolicyRepo())

	codes := []string{"HEALTH-001", "HEALTH-002", "LIFE-001"}
	for _, code := range codes {
		in := healthProduct()
		in.Code = code
		if _, err := svc.Create(context.Background(), adminP, in); err != nil {
			t.Fatalf("seed %s: %v", code, err)
		}
	}

	page, err := svc.List(context.Background(), customerP, ports.ListProductsInput{Search: "health", Page: 1, Limit: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page.Total != 2 {
		t.Errorf("expected total 2, got %d", page.Page.Total)
	}
	if page.Page.Pages != 2 {
		t.Errorf("expected 2 pages, got %d", page.Page.Pages)
	}
	if len(page.Items) != 1 {
		t.Errorf("expected 1 item on page, got %d", len(page.Items))
	}
}
