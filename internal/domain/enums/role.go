package enums

import "strings"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleMerchant Role = "merchant"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ParseRole returns false for anything outside the closed role set.
func ParseRole(input string) (Role, bool) {
	switch value := Role(strings.ToLower(strings.TrimSpace(input))); value {
	case RoleCustomer, RoleMerchant, RoleManager, RoleAdmin:
		return value, true
	default:
		return "", false
	}
}
