package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeshu111999/RBAC/internal/auth"
	"github.com/yeshu111999/RBAC/internal/constants"
	apierrors "github.com/yeshu111999/RBAC/internal/errors"
)

// Authorize evaluates a route's declared requirement. Public routes bypass
// both the permission check and principal extraction entirely; all other
// routes get the bearer token verified, the claims attached to the context,
// and the permission set checked conjunctively against the principal's role.
func Authorize(tokens *auth.TokenManager, req auth.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		if req.IsPublic() {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		if !auth.Authorize(claims, req) {
			apierrors.Forbidden(c, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the authenticated principal from the context.
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}

	claims, ok := value.(*auth.Claims)
	return claims, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
