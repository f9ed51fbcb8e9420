package middleware

import (
  "time"
  "github.com/gin-gonic/gin"
  "github.com/orgdir/orgdir-backend/internal/logger"
)

// RequestLogger emits one structured line per request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
  requestLog := log.With("middleware", "RequestLogger")
  return func(c *gin.Context) {
    start := time.Now()
    c.Next()
    requestLog.Info("Handled request",
      "method", c.Request.Method,
      "path", c.Request.URL.Path,
      "status", c.Writer.Status(),
      "duration_ms", time.Since(start).Milliseconds(),
      "client_ip", c.ClientIP(),
    )
  }
}
