package handlers

import (
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/services"
)

type ActivityHandler struct {
  log             *logger.Logger
  activityService services.ActivityService
}

func NewActivityHandler(log *logger.Logger, activityService services.ActivityService) *ActivityHandler {
  return &ActivityHandler{
    log:             log.With("handler", "ActivityHandler"),
    activityService: activityService,
  }
}

func (h *ActivityHandler) Create(c *gin.Context) {
  var input services.CreateActivityInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  activity, err := h.activityService.Create(c.Request.Context(), nil, input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, activity)
}

func (h *ActivityHandler) Get(c *gin.Context) {
  activityID, err := uuid.Parse(c.Param("activity_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_activity_id", err)
    return
  }
  activity, err := h.activityService.Get(c.Request.Context(), nil, activityID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, activity)
}

func (h *ActivityHandler) List(c *gin.Context) {
  skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
  activities, err := h.activityService.List(c.Request.Context(), nil, skip, limit)
  if err != nil {
    h.log.Error("List activities failed", "error", err)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, activities)
}

func (h *ActivityHandler) Update(c *gin.Context) {
  activityID, err := uuid.Parse(c.Param("activity_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_activity_id", err)
    return
  }
  var input services.UpdateActivityInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  activity, err := h.activityService.Update(c.Request.Context(), nil, activityID, input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, activity)
}

func (h *ActivityHandler) Delete(c *gin.Context) {
  activityID, err := uuid.Parse(c.Param("activity_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_activity_id", err)
    return
  }
  if err := h.activityService.Delete(c.Request.Context(), nil, activityID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, true)
}

func (h *ActivityHandler) Tree(c *gin.Context) {
  var parentID *uuid.UUID
  if raw := c.Query("parent_id"); raw != "" {
    parsed, err := uuid.Parse(raw)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "invalid_parent_id", err)
      return
    }
    parentID = &parsed
  }
  tree, err := h.activityService.Tree(c.Request.Context(), nil, parentID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, tree)
}
