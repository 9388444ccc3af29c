package auth

// Role is the single role assigned to every user.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleViewer Role = "VIEWER"
)

// Permission is an atomic capability checked against a role.
type Permission string

const (
	PermViewTasks    Permission = "VIEW_TASKS"
	PermManageTasks  Permission = "MANAGE_TASKS"
	PermManageUsers  Permission = "MANAGE_USERS"
	PermViewAuditLog Permission = "VIEW_AUDIT_LOG"
)

// rolePermissions maps each role to the permissions it grants.
// The sets do not form a strict superset chain (ADMIN lacks MANAGE_USERS),
// so callers must always consult the table rather than compare roles.
var rolePermissions = map[Role][]Permission{
	RoleOwner:  {PermViewTasks, PermManageTasks, PermManageUsers, PermViewAuditLog},
	RoleAdmin:  {PermViewTasks, PermManageTasks, PermViewAuditLog},
	RoleViewer: {PermViewTasks},
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// PermissionsOf returns the permission set granted to a role.
// Unknown roles get an empty set.
func PermissionsOf(role Role) []Permission {
	return rolePermissions[role]
}

// Has reports whether the role grants a single permission.
func (r Role) Has(perm Permission) bool {
	for _, p := range rolePermissions[r] {
		if p == perm {
			return true
		}
	}
	return false
}

// HasAll reports whether the role grants every permission in perms.
// An empty perms slice is trivially satisfied.
func (r Role) HasAll(perms []Permission) bool {
	for _, p := range perms {
		if !r.Has(p) {
			return false
		}
	}
	return true
}
