package authz

import (
	"testing"

	"github.com/insureline/policy-admin/internal/core/domain"
)

func TestAllow_Admin_FullAccess(t *testing.T) {
	admin := domain.Principal{ID: "adm1", Role: domain.RoleAdmin}

	actions := []Action{
		ProductCreate, ProductUpdate, ProductDelete, ProductRead,
		PolicyPurchase, PolicyCancel, PolicyRead,
		ClaimCreate, ClaimRead, ClaimDecide, ClaimAssign,
		PaymentCreate, PaymentRead, AuditRead, UserManage,
	}
	for _, a := range actions {
		if !Allow(admin, a, "someone-else") {
			t.Errorf("admin should be allowed %s", a)
		}
	}
}

func TestAllow_Customer_OwnResourcesOnly(t *testing.T) {
	cust := domain.Principal{ID: "cust1", Role: domain.RoleCustomer}

	if !Allow(cust, ClaimCreate, "cust1") {
		t.Error("customer should create own claim")
	}
	if Allow(cust, ClaimRead, "cust2") {
		t.Error("customer must not read another customer's claim")
	}
	if !Allow(cust, PolicyCancel, "cust1") {
		t.Error("customer should cancel own policy")
	}
	if Allow(cust, ProductCreate, "") {
		t.Error("customer must not create catalog products")
	}
	if Allow(cust, ClaimDecide, "cust1") {
		t.Error("customer must not decide claims, even own")
	}
	if Allow(cust, AuditRead, "") {
		t.Error("customer must not read the audit trail")
	}
	if !Allow(cust, ProductRead, "") {
		t.Error("customer should browse the catalog")
	}
}

func TestAllow_Agent_Capabilities(t *testing.T) {
	agent := domain.Principal{ID: "agt1", Role: domain.RoleAgent}

	if !Allow(agent, ClaimRead, "") {
		t.Error("agent should read claims")
	}
	if !Allow(agent, ClaimDecide, "") {
		t.Error("agent should decide claims")
	}
	if Allow(agent, ClaimAssign, "") {
		t.Error("assignment is admin-only")
	}
	if Allow(agent, ProductCreate, "") {
		t.Error("agent must not mutate the catalog")
	}
	if Allow(agent, UserManage, "") {
		t.Error("agent must not manage users")
	}
}

func TestAllow_UnknownRole_DeniedEverything(t *testing.T) {
	p := domain.Principal{ID: "x", Role: "auditor"}
	if Allow(p, ProductRead, "") {
		t.Error("unknown roles get nothing")
	}
}
