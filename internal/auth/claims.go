package auth

import "github.com/golang-jwt/jwt/v5"

// Claims is the authenticated principal attached to every request.
// It is built once from a verified token and never mutated afterwards.
// OrganizationID is nil for users not attached to any organization; such
// principals are valid but denied all organization-scoped operations.
type Claims struct {
	UserID         uint64  `json:"user_id"`
	Email          string  `json:"email"`
	Role           Role    `json:"role"`
	OrganizationID *uint64 `json:"organization_id"`
	jwt.RegisteredClaims
}

// InOrganization reports whether the principal belongs to the given org.
func (c *Claims) InOrganization(orgID uint64) bool {
	return c.OrganizationID != nil && *c.OrganizationID == orgID
}
