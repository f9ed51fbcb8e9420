package handlers

import (
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/services"
)

type OrganizationHandler struct {
  log                 *logger.Logger
  organizationService services.OrganizationService
}

func NewOrganizationHandler(log *logger.Logger, organizationService services.OrganizationService) *OrganizationHandler {
  return &OrganizationHandler{
    log:                 log.With("handler", "OrganizationHandler"),
    organizationService: organizationService,
  }
}

func (h *OrganizationHandler) Create(c *gin.Context) {
  var input services.CreateOrganizationInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  organization, err := h.organizationService.Create(c.Request.Context(), nil, input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, organization)
}

func (h *OrganizationHandler) Get(c *gin.Context) {
  organizationID, err := uuid.Parse(c.Param("org_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_org_id", err)
    return
  }
  organization, err := h.organizationService.Get(c.Request.Context(), nil, organizationID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, organization)
}

func (h *OrganizationHandler) List(c *gin.Context) {
  skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
  organizations, err := h.organizationService.List(c.Request.Context(), nil, skip, limit)
  if err != nil {
    h.log.Error("List organizations failed", "error", err)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, organizations)
}

func (h *OrganizationHandler) Update(c *gin.Context) {
  organizationID, err := uuid.Parse(c.Param("org_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_org_id", err)
    return
  }
  var input services.UpdateOrganizationInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  organization, err := h.organizationService.Update(c.Request.Context(), nil, organizationID, input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, organization)
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
  organizationID, err := uuid.Parse(c.Param("org_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_org_id", err)
    return
  }
  if err := h.organizationService.Delete(c.Request.Context(), nil, organizationID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, true)
}

func (h *OrganizationHandler) Search(c *gin.Context) {
  organizations, err := h.organizationService.Search(c.Request.Context(), nil, c.Query("name"))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, organizations)
}

func (h *OrganizationHandler) ByBuilding(c *gin.Context) {
  buildingID, err := uuid.Parse(c.Param("building_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_building_id", err)
    return
  }
  organizations, err := h.organizationService.GetByBuilding(c.Request.Context(), nil, buildingID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, organizations)
}

func (h *OrganizationHandler) ByActivity(c *gin.Context) {
  activityID, err := uuid.Parse(c.Param("activity_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_activity_id", err)
    return
  }
  organizations, err := h.organizationService.GetByActivity(c.Request.Context(), nil, activityID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, organizations)
}

func (h *OrganizationHandler) ByRadius(c *gin.Context) {
  var input services.RadiusSearchInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  organizations, err := h.organizationService.GetByRadius(c.Request.Context(), nil, input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, organizations)
}
