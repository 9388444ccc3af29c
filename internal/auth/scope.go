package auth

// Scope branch names recorded in the audit log.
const (
	ScopeBranchOrg           = "org"
	ScopeBranchViewerLimited = "viewer-limited"
)

// TaskScope describes the subset of tasks a principal may observe.
// Organization scoping is absolute and applied first; role narrowing only
// restricts further, never expands beyond the organization.
type TaskScope struct {
	// Empty means the principal can see no tasks at all (no organization).
	Empty bool
	// OrganizationID is the organization boundary when Empty is false.
	OrganizationID uint64
	// MemberUserID, when non-nil, restricts visibility to tasks the user
	// created or is assigned to (the VIEWER branch).
	MemberUserID *uint64
}

// Branch returns the scope branch name for audit purposes.
func (s TaskScope) Branch() string {
	if s.MemberUserID != nil {
		return ScopeBranchViewerLimited
	}
	return ScopeBranchOrg
}

// Allows reports whether a task with the given organization, creator and
// assignee is visible under this scope.
func (s TaskScope) Allows(organizationID uint64, createdByID, assignedToID *uint64) bool {
	if s.Empty {
		return false
	}
	if organizationID != s.OrganizationID {
		return false
	}
	if s.MemberUserID == nil {
		return true
	}
	if createdByID != nil && *createdByID == *s.MemberUserID {
		return true
	}
	if assignedToID != nil && *assignedToID == *s.MemberUserID {
		return true
	}
	return false
}

// ResolveScope computes the task visibility scope for a principal.
// Principals without an organization see nothing. OWNER and ADMIN see the
// whole organization; VIEWER sees only tasks they created or are assigned to.
func ResolveScope(claims *Claims) TaskScope {
	if claims == nil || claims.OrganizationID == nil {
		return TaskScope{Empty: true}
	}

	scope := TaskScope{OrganizationID: *claims.OrganizationID}
	if claims.Role == RoleViewer {
		userID := claims.UserID
		scope.MemberUserID = &userID
	}
	return scope
}
