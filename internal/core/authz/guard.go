// Package authz is the capability matrix consulted by every service entry
// point before it touches state. Route-level RBAC middleware narrows who can
// reach an endpoint at all; this package decides whether a specific principal
// may perform a specific action on a specific resource.
package authz

import "github.com/insureline/policy-admin/internal/core/domain"

// Action enumerates everything a principal can ask the core to do.
type Action string

const (
	ProductCreate Action = "product:create"
	ProductUpdate Action = "product:update"
	ProductDelete Action = "product:delete"
	ProductRead   Action = "product:read"

	PolicyPurchase Action = "policy:purchase"
	PolicyCancel   Action = "policy:cancel"
	PolicyRead     Action = "policy:read"

	ClaimCreate Action = "claim:create"
	ClaimRead   Action = "claim:read"
	ClaimDecide Action = "claim:decide"
	ClaimAssign Action = "claim:assign"

	PaymentCreate Action = "payment:create"
	PaymentRead   Action = "payment:read"

	AuditRead  Action = "audit:read"
	UserManage Action = "user:manage"
)

// Allow reports whether p may perform action on a resource owned by ownerID.
// An empty ownerID means the action is not scoped to a particular owner
// (catalog reads, list-own queries where the service injects the scope).
//
// Capability matrix:
//   - admin: everything.
//   - agent: read the catalog, read and decide claims. Assignment scoping
//     (agents only act on claims assigned to them) is enforced by the claim
//     service, which knows the claim's assignee.
//   - customer: read the catalog; purchase, cancel and read own policies;
//     create and read own claims; create and read own payments.
func Allow(p domain.Principal, action Action, ownerID string) bool {
	if p.IsAdmin() {
		return true
	}

	switch p.Role {
	case domain.RoleAgent:
		switch action {
		case ProductRead, ClaimRead, ClaimDecide:
			return true
		}
		return false

	case domain.RoleCustomer:
		switch action {
		case ProductRead:
			return true
		case PolicyPurchase, PolicyCancel, PolicyRead,
			ClaimCreate, ClaimRead,
			PaymentCreate, PaymentRead:
			return ownerID == "" || ownerID == p.ID
		}
		return false
	}

	return false
}
