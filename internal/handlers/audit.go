package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeshu111999/RBAC/internal/audit"
	apierrors "github.com/yeshu111999/RBAC/internal/errors"
	"github.com/yeshu111999/RBAC/internal/middleware"
)

// AuditHandler exposes the organization-scoped audit log.
type AuditHandler struct {
	sink *audit.Sink
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(sink *audit.Sink) *AuditHandler {
	return &AuditHandler{
		sink: sink,
	}
}

// GetAuditLog returns the entries visible to the caller, in append order.
// The VIEW_AUDIT_LOG permission is enforced by the route declaration; the
// sink itself only scopes by organization.
func (h *AuditHandler) GetAuditLog(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": h.sink.Query(claims)})
}
