package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/orgdir/orgdir-backend/internal/logger"
)

// SeedService wipes and repopulates the directory with a small test
// dataset: a cluster of central buildings, one far-away building, a
// three-level activity hierarchy, and organizations spread across them.
type SeedService interface {
  Populate(ctx context.Context) error
}

type seedService struct {
  db                  *gorm.DB
  log                 *logger.Logger
  buildingService     BuildingService
  activityService     ActivityService
  organizationService OrganizationService
}

func NewSeedService(
  db *gorm.DB,
  baseLog *logger.Logger,
  buildingService BuildingService,
  activityService ActivityService,
  organizationService OrganizationService,
) SeedService {
  serviceLog := baseLog.With("service", "SeedService")
  return &seedService{
    db:                  db,
    log:                 serviceLog,
    buildingService:     buildingService,
    activityService:     activityService,
    organizationService: organizationService,
  }
}

func (ss *seedService) Populate(ctx context.Context) error {
  return ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := ss.wipe(ctx, tx); err != nil {
      return err
    }
    return ss.populate(ctx, tx)
  })
}

func (ss *seedService) populate(ctx context.Context, tx *gorm.DB) error {
  ss.log.Info("Seeding buildings...")
  centralOffice, err := ss.buildingService.Create(ctx, tx, CreateBuildingInput{
    Address:   "Lenina St 1, Moscow",
    Latitude:  55.7558,
    Longitude: 37.6176,
  })
  if err != nil {
    return err
  }
  miraAvenue, err := ss.buildingService.Create(ctx, tx, CreateBuildingInput{
    Address:   "Mira Ave 10, Moscow",
    Latitude:  55.7890,
    Longitude: 37.6789,
  })
  if err != nil {
    return err
  }
  riverside, err := ss.buildingService.Create(ctx, tx, CreateBuildingInput{
    Address:   "Naberezhnaya 5, Moscow",
    Latitude:  55.7400,
    Longitude: 37.5800,
  })
  if err != nil {
    return err
  }
  remote, err := ss.buildingService.Create(ctx, tx, CreateBuildingInput{
    Address:   "Nevsky Prospect 28, Saint Petersburg",
    Latitude:  59.9343,
    Longitude: 30.3351,
  })
  if err != nil {
    return err
  }

  ss.log.Info("Seeding activities...")
  food, err := ss.activityService.Create(ctx, tx, CreateActivityInput{Name: "Food"})
  if err != nil {
    return err
  }
  dairy, err := ss.activityService.Create(ctx, tx, CreateActivityInput{Name: "Dairy products", ParentID: &food.ID})
  if err != nil {
    return err
  }
  cheese, err := ss.activityService.Create(ctx, tx, CreateActivityInput{Name: "Cheese", ParentID: &dairy.ID})
  if err != nil {
    return err
  }
  education, err := ss.activityService.Create(ctx, tx, CreateActivityInput{Name: "Education"})
  if err != nil {
    return err
  }
  sport, err := ss.activityService.Create(ctx, tx, CreateActivityInput{Name: "Sport"})
  if err != nil {
    return err
  }
  swimming, err := ss.activityService.Create(ctx, tx, CreateActivityInput{Name: "Swimming", ParentID: &sport.ID})
  if err != nil {
    return err
  }

  ss.log.Info("Seeding organizations...")
  organizations := []CreateOrganizationInput{
    {
      Name:         "School No. 1",
      BuildingID:   centralOffice.ID,
      PhoneNumbers: []string{"+7-495-111-2233"},
      ActivityIDs:  []uuid.UUID{education.ID},
    },
    {
      Name:         "Youth Sports Academy",
      BuildingID:   miraAvenue.ID,
      PhoneNumbers: []string{"+7-495-222-3344", "+7-495-222-3345"},
      ActivityIDs:  []uuid.UUID{sport.ID, swimming.ID},
    },
    {
      Name:         "Riverside Cheese Shop",
      BuildingID:   riverside.ID,
      PhoneNumbers: []string{"+7-495-333-4455"},
      ActivityIDs:  []uuid.UUID{cheese.ID},
    },
    {
      Name:         "Nevsky Dairy Market",
      BuildingID:   remote.ID,
      PhoneNumbers: []string{"+7-812-444-5566"},
      ActivityIDs:  []uuid.UUID{dairy.ID},
    },
  }
  for _, input := range organizations {
    if _, err := ss.organizationService.Create(ctx, tx, input); err != nil {
      return fmt.Errorf("seed organization %q: %w", input.Name, err)
    }
  }

  ss.log.Info("Seed data loaded",
    "buildings", 4,
    "activities", 6,
    "organizations", len(organizations),
  )
  return nil
}

func (ss *seedService) wipe(ctx context.Context, tx *gorm.DB) error {
  ss.log.Info("Clearing existing directory data...")
  statements := []string{
    `DELETE FROM "organization_activity"`,
    `DELETE FROM "phone"`,
    `DELETE FROM "organization"`,
    `DELETE FROM "activity"`,
    `DELETE FROM "building"`,
  }
  for _, statement := range statements {
    if err := tx.WithContext(ctx).Exec(statement).Error; err != nil {
      return fmt.Errorf("clear tables: %w", err)
    }
  }
  return nil
}
