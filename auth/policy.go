package auth

import "github.com/EricVikberg/M7011E/models"

// Capabilities gate individual operations. Roles map to explicit
// capability sets instead of a permission-class hierarchy.
const (
	CapCatalogWrite = "catalog:write"
	CapOrderReadAny = "order:read_any"
	CapOrderStream  = "order:stream"
	CapUserList     = "user:list"
)

var roleCapabilities = map[string]map[string]bool{
	models.RoleAdmin: {
		CapCatalogWrite: true,
		CapOrderReadAny: true,
		CapOrderStream:  true,
		CapUserList:     true,
	},
	models.RoleStaff: {
		CapCatalogWrite: true,
		CapOrderReadAny: true,
		CapOrderStream:  true,
		CapUserList:     true,
	},
	models.RoleCustomer: {},
}

// Allow reports whether the role holds the capability.
func Allow(role, capability string) bool {
	return roleCapabilities[role][capability]
}
