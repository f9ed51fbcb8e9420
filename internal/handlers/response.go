package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/orgdir/orgdir-backend/internal/apierr"
)

type APIError struct {
  Message     string      `json:"message"`
  Code        string      `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error       APIError    `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps a service failure onto the wire: typed API
// errors keep their status and code, anything else is a 500.
func RespondServiceError(c *gin.Context, err error) {
  var ae *apierr.Error
  if errors.As(err, &ae) {
    RespondError(c, ae.Status, ae.Code, ae)
    return
  }
  RespondError(c, http.StatusInternalServerError, "internal_error", err)
}
