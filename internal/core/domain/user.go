package domain

import "time"

const (
	RoleCustomer = "customer"
	RoleAgent    = "agent"
	RoleAdmin    = "admin"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAgent || role == RoleAdmin
}

// User models an account in the system. Customers buy policies and file
// claims; agents review claims; admins manage the catalog and user base.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the authenticated identity making a request. It is resolved
// by the auth middleware and passed into every service entry point; the core
// never parses tokens itself.
type Principal struct {
	ID   string
	Role string
}

func (p Principal) IsAdmin() bool    { return p.Role == RoleAdmin }
func (p Principal) IsAgent() bool    { return p.Role == RoleAgent }
func (p Principal) IsCustomer() bool { return p.Role == RoleCustomer }
