package domain

import "time"

// Role enumerates account roles. The set is closed; anything else is
// rejected at the boundary.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// ParseRole validates an incoming role string against the closed set.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleCustomer, RoleAgent, RoleAdmin:
		return Role(value), true
	}
	return "", false
}

// IsStaff reports whether the role grants staff-level access.
func (r Role) IsStaff() bool {
	return r == RoleAgent || r == RoleAdmin
}

// User is the domain model for any account: customers filing tickets and
// the staff triaging them.
type User struct {
	ID           string
	Username     string
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
}
