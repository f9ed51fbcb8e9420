package main

import (
  "fmt"
  "os"
  "github.com/orgdir/orgdir-backend/internal/db"
  "github.com/orgdir/orgdir-backend/internal/handlers"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/middleware"
  "github.com/orgdir/orgdir-backend/internal/repos"
  "github.com/orgdir/orgdir-backend/internal/server"
  "github.com/orgdir/orgdir-backend/internal/services"
  "github.com/orgdir/orgdir-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  utils.LoadDotenv(log)
  apiKey := utils.GetEnv("API_KEY", "supersecretkey", nil)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  buildingRepo := repos.NewBuildingRepo(thePG, log)
  activityRepo := repos.NewActivityRepo(thePG, log)
  organizationRepo := repos.NewOrganizationRepo(thePG, log)
  phoneRepo := repos.NewPhoneRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  buildingService := services.NewBuildingService(thePG, log, buildingRepo)
  activityService := services.NewActivityService(thePG, log, activityRepo)
  organizationService := services.NewOrganizationService(thePG, log, organizationRepo, buildingRepo, activityRepo, phoneRepo)
  phoneService := services.NewPhoneService(thePG, log, phoneRepo, organizationRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  buildingHandler := handlers.NewBuildingHandler(log, buildingService)
  activityHandler := handlers.NewActivityHandler(log, activityService)
  organizationHandler := handlers.NewOrganizationHandler(log, organizationService)
  phoneHandler := handlers.NewPhoneHandler(log, phoneService)

  // Middleware
  log.Info("Setting up middleware from main...")
  apiKeyMiddleware := middleware.NewAPIKeyMiddleware(log, apiKey)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    Log:                 log,
    APIKeyMiddleware:    apiKeyMiddleware,
    OrganizationHandler: organizationHandler,
    BuildingHandler:     buildingHandler,
    ActivityHandler:     activityHandler,
    PhoneHandler:        phoneHandler,
  })

  port := utils.GetEnvAsInt("PORT", 8000, log)
  log.Info("Server listening", "port", port)
  if err := router.Run(fmt.Sprintf(":%d", port)); err != nil {
    log.Error("Server failed", "error", err)
    os.Exit(1)
  }
}
