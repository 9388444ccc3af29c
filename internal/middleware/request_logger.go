package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yeshu111999/RBAC/internal/constants"
	"github.com/yeshu111999/RBAC/internal/logs"
)

// RequestLogger assigns a request id and logs every request with its
// status and duration.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(constants.ContextKeyReqID, reqID)
		c.Writer.Header().Set("X-Request-Id", reqID)

		start := time.Now()
		c.Next()

		logs.Logger.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		}).Info("request")
	}
}
