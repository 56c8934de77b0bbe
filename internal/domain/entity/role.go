package entity

import "slices"

// Role represents the type of role a staff user can have in the system.
type Role string

const (
	// RoleUser indicates a regular staff role with read-only access.
	RoleUser Role = "user"
	// RoleAdmin indicates full administrative access, including deletes.
	RoleAdmin Role = "admin"
	// RoleManager indicates write access to all CRM entities.
	RoleManager Role = "manager"
	// RoleSales indicates write access to orders, tasks and communications.
	RoleSales Role = "sales"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleManager, RoleSales:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}
