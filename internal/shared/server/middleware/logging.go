package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/shared/telemetry"
)

// Context keys handlers set so the request log can carry them.
const (
	ScreeningBatchKey = "batchId"
	ScreeningRolesKey = "screeningRoles"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if batchID := c.GetString(ScreeningBatchKey); batchID != "" {
			fields["batch_id"] = batchID
		}
		if roles, ok := c.Get(ScreeningRolesKey); ok {
			fields["roles"] = roles
		}
		telemetry.Info("request.complete", fields)
	}
}
