package middleware

import (
  "crypto/subtle"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/orgdir/orgdir-backend/internal/logger"
)

const apiKeyHeader = "X-API-Key"

type APIKeyMiddleware struct {
  log    *logger.Logger
  apiKey string
}

func NewAPIKeyMiddleware(log *logger.Logger, apiKey string) *APIKeyMiddleware {
  middlewareLog := log.With("middleware", "APIKeyMiddleware")
  return &APIKeyMiddleware{log: middlewareLog, apiKey: apiKey}
}

func (am *APIKeyMiddleware) RequireAPIKey() gin.HandlerFunc {
  return func(c *gin.Context) {
    provided := c.GetHeader(apiKeyHeader)
    if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(am.apiKey)) != 1 {
      am.log.Debug("Rejected request with invalid or missing API key", "path", c.Request.URL.Path)
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
      return
    }
    c.Next()
  }
}
