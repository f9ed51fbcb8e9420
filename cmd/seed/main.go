package main

import (
  "context"
  "flag"
  "fmt"
  "os"
  "github.com/orgdir/orgdir-backend/internal/db"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/repos"
  "github.com/orgdir/orgdir-backend/internal/services"
  "github.com/orgdir/orgdir-backend/internal/utils"
)

// Wipes and repopulates the directory with test data. Run after the API
// (or this binary itself) has applied migrations.
func main() {
  var migrate bool
  flag.BoolVar(&migrate, "migrate", true, "run schema migration before seeding")
  flag.Parse()

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

  utils.LoadDotenv(log)

  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if migrate {
    if err := postgresService.AutoMigrateAll(); err != nil {
      log.Error("Postgres auto migration failed", "error", err)
      os.Exit(1)
    }
  }
  thePG := postgresService.DB()

  buildingRepo := repos.NewBuildingRepo(thePG, log)
  activityRepo := repos.NewActivityRepo(thePG, log)
  organizationRepo := repos.NewOrganizationRepo(thePG, log)
  phoneRepo := repos.NewPhoneRepo(thePG, log)

  buildingService := services.NewBuildingService(thePG, log, buildingRepo)
  activityService := services.NewActivityService(thePG, log, activityRepo)
  organizationService := services.NewOrganizationService(thePG, log, organizationRepo, buildingRepo, activityRepo, phoneRepo)

  seedService := services.NewSeedService(thePG, log, buildingService, activityService, organizationService)
  if err := seedService.Populate(context.Background()); err != nil {
    log.Error("Seeding failed", "error", err)
    os.Exit(1)
  }
  log.Info("Test data loaded")
}
