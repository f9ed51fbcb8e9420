package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/services"
)

type PhoneHandler struct {
  log          *logger.Logger
  phoneService services.PhoneService
}

func NewPhoneHandler(log *logger.Logger, phoneService services.PhoneService) *PhoneHandler {
  return &PhoneHandler{
    log:          log.With("handler", "PhoneHandler"),
    phoneService: phoneService,
  }
}

func (h *PhoneHandler) Create(c *gin.Context) {
  var input services.CreatePhoneInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  phone, err := h.phoneService.CreateOrReassign(c.Request.Context(), nil, input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, phone)
}

func (h *PhoneHandler) Get(c *gin.Context) {
  phoneID, err := uuid.Parse(c.Param("phone_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_phone_id", err)
    return
  }
  phone, err := h.phoneService.Get(c.Request.Context(), nil, phoneID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, phone)
}

func (h *PhoneHandler) Delete(c *gin.Context) {
  phoneID, err := uuid.Parse(c.Param("phone_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_phone_id", err)
    return
  }
  if err := h.phoneService.Delete(c.Request.Context(), nil, phoneID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, true)
}
