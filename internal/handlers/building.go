package handlers

import (
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/services"
)

type BuildingHandler struct {
  log             *logger.Logger
  buildingService services.BuildingService
}

func NewBuildingHandler(log *logger.Logger, buildingService services.BuildingService) *BuildingHandler {
  return &BuildingHandler{
    log:             log.With("handler", "BuildingHandler"),
    buildingService: buildingService,
  }
}

func (h *BuildingHandler) Create(c *gin.Context) {
  var input services.CreateBuildingInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  building, err := h.buildingService.Create(c.Request.Context(), nil, input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, building)
}

func (h *BuildingHandler) Get(c *gin.Context) {
  buildingID, err := uuid.Parse(c.Param("building_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_building_id", err)
    return
  }
  building, err := h.buildingService.Get(c.Request.Context(), nil, buildingID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, building)
}

func (h *BuildingHandler) List(c *gin.Context) {
  skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
  buildings, err := h.buildingService.List(c.Request.Context(), nil, skip, limit)
  if err != nil {
    h.log.Error("List buildings failed", "error", err)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, buildings)
}

func (h *BuildingHandler) Delete(c *gin.Context) {
  buildingID, err := uuid.Parse(c.Param("building_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_building_id", err)
    return
  }
  if err := h.buildingService.Delete(c.Request.Context(), nil, buildingID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, true)
}
