package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/orgdir/orgdir-backend/internal/handlers"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/middleware"
)

type RouterConfig struct {
  Log                   *logger.Logger
  APIKeyMiddleware      *middleware.APIKeyMiddleware
  OrganizationHandler   *handlers.OrganizationHandler
  BuildingHandler       *handlers.BuildingHandler
  ActivityHandler       *handlers.ActivityHandler
  PhoneHandler          *handlers.PhoneHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.New()
  router.Use(gin.Recovery())
  router.Use(middleware.RequestLogger(cfg.Log))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:8002",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-API-Key"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.APIKeyMiddleware.RequireAPIKey())

  // Organizations
  organizations := protected.Group("/organizations")
  organizations.POST("", cfg.OrganizationHandler.Create)
  organizations.GET("", cfg.OrganizationHandler.List)
  organizations.POST("/by_radius", cfg.OrganizationHandler.ByRadius)
  organizations.GET("/by_building/:building_id", cfg.OrganizationHandler.ByBuilding)
  organizations.GET("/by_activity/:activity_id", cfg.OrganizationHandler.ByActivity)
  organizations.GET("/search", cfg.OrganizationHandler.Search)
  organizations.GET("/:org_id", cfg.OrganizationHandler.Get)
  organizations.PUT("/:org_id", cfg.OrganizationHandler.Update)
  organizations.DELETE("/:org_id", cfg.OrganizationHandler.Delete)

  // Buildings
  buildings := protected.Group("/buildings")
  buildings.POST("", cfg.BuildingHandler.Create)
  buildings.GET("", cfg.BuildingHandler.List)
  buildings.GET("/:building_id", cfg.BuildingHandler.Get)
  buildings.DELETE("/:building_id", cfg.BuildingHandler.Delete)

  // Activities
  activities := protected.Group("/activities")
  activities.POST("", cfg.ActivityHandler.Create)
  activities.GET("", cfg.ActivityHandler.List)
  activities.GET("/tree", cfg.ActivityHandler.Tree)
  activities.GET("/:activity_id", cfg.ActivityHandler.Get)
  activities.PUT("/:activity_id", cfg.ActivityHandler.Update)
  activities.DELETE("/:activity_id", cfg.ActivityHandler.Delete)

  // Phones
  phones := protected.Group("/phones")
  phones.POST("", cfg.PhoneHandler.Create)
  phones.GET("/:phone_id", cfg.PhoneHandler.Get)
  phones.DELETE("/:phone_id", cfg.PhoneHandler.Delete)

  return router
}
