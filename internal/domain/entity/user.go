package entity

import "time"

// Valid roles for User. No hierarchy: a route's allow-set must name every
// role it admits.
const (
	RoleSuperAdmin   = "super_admin"
	RoleCompanyAdmin = "company_admin"
	RoleManager      = "manager"
	RoleDispatcher   = "dispatcher"
	RoleDriver       = "driver"
	RoleCustomer     = "customer"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch s {
	case RoleSuperAdmin, RoleCompanyAdmin, RoleManager, RoleDispatcher, RoleDriver, RoleCustomer:
		return true
	}
	return false
}

// User is an account profile. CompanyID is empty for super_admin accounts,
// which operate without a tenant binding.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext after persisting
	Name         string
	Role         string // see Role* constants
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
