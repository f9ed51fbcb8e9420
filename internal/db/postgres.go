package db

import (
  "fmt"
  "time"
  "github.com/cenkalti/backoff"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/types"
  "github.com/orgdir/orgdir-backend/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  dsn := utils.GetEnv("SYNC_DATABASE_URL", "", nil)
  if dsn == "" {
    postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
    postgresPort := utils.GetEnvAsInt("POSTGRES_PORT", 5432, log)
    postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
    postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "postgres", nil)
    postgresDB := utils.GetEnv("POSTGRES_DB", "org_directory", log)
    dsn = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresDB)
  }

  log.Info("Connecting to Postgres...")
  var gormDB *gorm.DB
  bo := backoff.NewExponentialBackOff()
  bo.InitialInterval = 1 * time.Second
  bo.MaxInterval = 5 * time.Second
  bo.MaxElapsedTime = 30 * time.Second

  err := backoff.RetryNotify(func() error {
    var openErr error
    gormDB, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
      DisableForeignKeyConstraintWhenMigrating: true,
      TranslateError:                           true,
    })
    if openErr != nil {
      return openErr
    }
    sqlDB, dbErr := gormDB.DB()
    if dbErr != nil {
      return dbErr
    }
    return sqlDB.Ping()
  }, bo, func(err error, next time.Duration) {
    serviceLog.Warn("Postgres not reachable, retrying", "error", err, "next_attempt_in", next)
  })
  if err != nil {
    serviceLog.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("connect to Postgres: %w", err)
  }

  if err := gormDB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
    return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
  }
  serviceLog.Info("uuid-ossp extension enabled")

  return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.Building{},
    &types.Activity{},
    &types.Organization{},
    &types.Phone{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  constraints := []struct {
    table      string
    name       string
    definition string
  }{
    {
      table:      "organization",
      name:       "fk_organization_building_id",
      definition: `FOREIGN KEY ("building_id") REFERENCES "building"("id") ON DELETE RESTRICT`,
    },
    {
      table:      "phone",
      name:       "fk_phone_organization_id",
      definition: `FOREIGN KEY ("organization_id") REFERENCES "organization"("id") ON DELETE CASCADE`,
    },
    {
      table:      "activity",
      name:       "fk_activity_parent_id",
      definition: `FOREIGN KEY ("parent_id") REFERENCES "activity"("id") ON DELETE CASCADE`,
    },
    {
      table:      "organization_activity",
      name:       "fk_organization_activity_organization_id",
      definition: `FOREIGN KEY ("organization_id") REFERENCES "organization"("id") ON DELETE CASCADE`,
    },
    {
      table:      "organization_activity",
      name:       "fk_organization_activity_activity_id",
      definition: `FOREIGN KEY ("activity_id") REFERENCES "activity"("id") ON DELETE CASCADE`,
    },
  }
  for _, fk := range constraints {
    drop := fmt.Sprintf(`ALTER TABLE "%s" DROP CONSTRAINT IF EXISTS "%s"`, fk.table, fk.name)
    if err := s.db.Exec(drop).Error; err != nil {
      return fmt.Errorf("drop %s: %w", fk.name, err)
    }
    add := fmt.Sprintf(`ALTER TABLE "%s" ADD CONSTRAINT "%s" %s`, fk.table, fk.name, fk.definition)
    if err := s.db.Exec(add).Error; err != nil {
      return fmt.Errorf("add %s: %w", fk.name, err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
