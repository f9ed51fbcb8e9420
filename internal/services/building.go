package services

import (
  "context"
  "errors"
  "fmt"
  "net/http"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/orgdir/orgdir-backend/internal/apierr"
  "github.com/orgdir/orgdir-backend/internal/geo"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/repos"
  "github.com/orgdir/orgdir-backend/internal/types"
)

const defaultListLimit = 100

type CreateBuildingInput struct {
  Address   string  `json:"address"`
  Latitude  float64 `json:"latitude"`
  Longitude float64 `json:"longitude"`
}

type BuildingService interface {
  Create(ctx context.Context, tx *gorm.DB, input CreateBuildingInput) (*types.Building, error)
  Get(ctx context.Context, tx *gorm.DB, buildingID uuid.UUID) (*types.Building, error)
  List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Building, error)
  Delete(ctx context.Context, tx *gorm.DB, buildingID uuid.UUID) error
}

type buildingService struct {
  db           *gorm.DB
  log          *logger.Logger
  buildingRepo repos.BuildingRepo
}

func NewBuildingService(db *gorm.DB, baseLog *logger.Logger, buildingRepo repos.BuildingRepo) BuildingService {
  serviceLog := baseLog.With("service", "BuildingService")
  return &buildingService{db: db, log: serviceLog, buildingRepo: buildingRepo}
}

func (bs *buildingService) Create(ctx context.Context, tx *gorm.DB, input CreateBuildingInput) (*types.Building, error) {
  if input.Address == "" {
    return nil, apierr.New(http.StatusBadRequest, "address_required", errors.New("address must not be empty"))
  }
  if err := geo.ValidatePoint(input.Latitude, input.Longitude); err != nil {
    return nil, apierr.New(http.StatusBadRequest, "invalid_coordinates", err)
  }

  building := &types.Building{
    Address:   input.Address,
    Latitude:  input.Latitude,
    Longitude: input.Longitude,
  }
  created, err := bs.buildingRepo.Create(ctx, tx, []*types.Building{building})
  if err != nil {
    if errors.Is(err, gorm.ErrDuplicatedKey) {
      return nil, apierr.New(http.StatusConflict, "duplicate_address", fmt.Errorf("building at %q already exists", input.Address))
    }
    bs.log.Error("Create building failed", "error", err)
    return nil, fmt.Errorf("create building: %w", err)
  }
  return created[0], nil
}

func (bs *buildingService) Get(ctx context.Context, tx *gorm.DB, buildingID uuid.UUID) (*types.Building, error) {
  buildings, err := bs.buildingRepo.GetByIDs(ctx, tx, []uuid.UUID{buildingID})
  if err != nil {
    return nil, fmt.Errorf("load building: %w", err)
  }
  if len(buildings) == 0 {
    return nil, apierr.New(http.StatusNotFound, "building_not_found", fmt.Errorf("building %s not found", buildingID))
  }
  return buildings[0], nil
}

func (bs *buildingService) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Building, error) {
  if skip < 0 {
    skip = 0
  }
  if limit <= 0 {
    limit = defaultListLimit
  }
  buildings, err := bs.buildingRepo.List(ctx, tx, skip, limit)
  if err != nil {
    return nil, fmt.Errorf("list buildings: %w", err)
  }
  return buildings, nil
}

func (bs *buildingService) Delete(ctx context.Context, tx *gorm.DB, buildingID uuid.UUID) error {
  if _, err := bs.Get(ctx, tx, buildingID); err != nil {
    return err
  }
  if err := bs.buildingRepo.Delete(ctx, tx, []uuid.UUID{buildingID}); err != nil {
    if errors.Is(err, gorm.ErrForeignKeyViolated) {
      return apierr.New(http.StatusConflict, "building_in_use", fmt.Errorf("building %s still has organizations", buildingID))
    }
    bs.log.Error("Delete building failed", "error", err, "building_id", buildingID)
    return fmt.Errorf("delete building: %w", err)
  }
  return nil
}
