package domain

import "time"

// Role enumerates account roles.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Authority returns the capability marker derived from a role, e.g. "ROLE_ADMIN".
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

// User is the domain model for persisted principals.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
