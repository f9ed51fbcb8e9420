package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/types"
)

type BuildingRepo interface {
  Create(ctx context.Context, tx *gorm.DB, buildings []*types.Building) ([]*types.Building, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, buildingIDs []uuid.UUID) ([]*types.Building, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Building, error)
  List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Building, error)
  Delete(ctx context.Context, tx *gorm.DB, buildingIDs []uuid.UUID) error
}

type buildingRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewBuildingRepo(db *gorm.DB, baseLog *logger.Logger) BuildingRepo {
  repoLog := baseLog.With("repo", "BuildingRepo")
  return &buildingRepo{db: db, log: repoLog}
}

func (br *buildingRepo) Create(ctx context.Context, tx *gorm.DB, buildings []*types.Building) ([]*types.Building, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  if len(buildings) == 0 {
    return []*types.Building{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&buildings).Error; err != nil {
    return nil, err
  }

  return buildings, nil
}

func (br *buildingRepo) GetByIDs(ctx context.Context, tx *gorm.DB, buildingIDs []uuid.UUID) ([]*types.Building, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var results []*types.Building

  if len(buildingIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", buildingIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (br *buildingRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Building, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var results []*types.Building
  if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (br *buildingRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Building, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var results []*types.Building
  if err := transaction.WithContext(ctx).
    Order("created_at ASC").
    Offset(skip).
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (br *buildingRepo) Delete(ctx context.Context, tx *gorm.DB, buildingIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  if len(buildingIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("id IN ?", buildingIDs).
    Delete(&types.Building{}).Error
}
