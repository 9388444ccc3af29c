package auth

// Requirement is the routing attribute every operation declares: either
// public (no authentication at all) or a set of required permissions.
// An empty, non-public permission set means "authenticated, no permission
// needed".
type Requirement struct {
	public      bool
	permissions []Permission
}

// Public marks an operation as reachable without any principal.
func Public() Requirement {
	return Requirement{public: true}
}

// Permissions declares the permissions an operation requires. The check is
// conjunctive: the principal's role must hold every listed permission.
func Permissions(perms ...Permission) Requirement {
	return Requirement{permissions: perms}
}

// IsPublic reports whether the requirement bypasses authentication entirely.
func (r Requirement) IsPublic() bool {
	return r.public
}

// Required returns the declared permission set.
func (r Requirement) Required() []Permission {
	return r.permissions
}

// Authorize decides whether a principal satisfies a requirement. It is a pure
// function of its inputs and must run before any mutation is attempted.
func Authorize(claims *Claims, req Requirement) bool {
	if req.public {
		return true
	}
	if len(req.permissions) == 0 {
		return claims != nil
	}
	if claims == nil || !claims.Role.Valid() {
		return false
	}
	return claims.Role.HasAll(req.permissions)
}
