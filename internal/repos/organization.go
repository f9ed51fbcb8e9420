package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/types"
)

type OrganizationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, organizations []*types.Organization) ([]*types.Organization, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, organizationIDs []uuid.UUID) ([]*types.Organization, error)
  List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Organization, error)
  GetByBuildingIDs(ctx context.Context, tx *gorm.DB, buildingIDs []uuid.UUID) ([]*types.Organization, error)
  GetByActivityIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) ([]*types.Organization, error)
  SearchByName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Organization, error)
  Update(ctx context.Context, tx *gorm.DB, organization *types.Organization) (*types.Organization, error)
  ReplaceActivities(ctx context.Context, tx *gorm.DB, organization *types.Organization, activities []*types.Activity) error
  Delete(ctx context.Context, tx *gorm.DB, organizationIDs []uuid.UUID) error
}

type organizationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewOrganizationRepo(db *gorm.DB, baseLog *logger.Logger) OrganizationRepo {
  repoLog := baseLog.With("repo", "OrganizationRepo")
  return &organizationRepo{db: db, log: repoLog}
}

func (or *organizationRepo) Create(ctx context.Context, tx *gorm.DB, organizations []*types.Organization) ([]*types.Organization, error) {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }

  if len(organizations) == 0 {
    return []*types.Organization{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&organizations).Error; err != nil {
    return nil, err
  }

  return organizations, nil
}

func (or *organizationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, organizationIDs []uuid.UUID) ([]*types.Organization, error) {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }

  var results []*types.Organization

  if len(organizationIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Preload("Building").
    Preload("Phones").
    Preload("Activities").
    Where("id IN ?", organizationIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (or *organizationRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Organization, error) {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }

  var results []*types.Organization
  if err := transaction.WithContext(ctx).
    Preload("Building").
    Preload("Phones").
    Preload("Activities").
    Order("created_at ASC").
    Offset(skip).
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (or *organizationRepo) GetByBuildingIDs(ctx context.Context, tx *gorm.DB, buildingIDs []uuid.UUID) ([]*types.Organization, error) {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }

  var results []*types.Organization
  if len(buildingIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Preload("Building").
    Preload("Phones").
    Preload("Activities").
    Where("building_id IN ?", buildingIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (or *organizationRepo) GetByActivityIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) ([]*types.Organization, error) {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }

  var results []*types.Organization
  if len(activityIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Preload("Building").
    Preload("Phones").
    Preload("Activities").
    Joins(`JOIN organization_activity oa ON oa.organization_id = organization.id`).
    Where("oa.activity_id IN ?", activityIDs).
    Distinct().
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (or *organizationRepo) SearchByName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Organization, error) {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }

  var results []*types.Organization
  if err := transaction.WithContext(ctx).
    Preload("Building").
    Preload("Phones").
    Preload("Activities").
    Where("name ILIKE ?", "%"+name+"%").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (or *organizationRepo) Update(ctx context.Context, tx *gorm.DB, organization *types.Organization) (*types.Organization, error) {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }

  if err := transaction.WithContext(ctx).
    Omit(clause.Associations).
    Save(organization).Error; err != nil {
    return nil, err
  }
  return organization, nil
}

func (or *organizationRepo) ReplaceActivities(ctx context.Context, tx *gorm.DB, organization *types.Organization, activities []*types.Activity) error {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }

  return transaction.WithContext(ctx).
    Model(organization).
    Association("Activities").
    Replace(activities)
}

func (or *organizationRepo) Delete(ctx context.Context, tx *gorm.DB, organizationIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }

  if len(organizationIDs) == 0 {
    return nil
  }

  // Join rows and phones fall away via ON DELETE CASCADE.
  return transaction.WithContext(ctx).
    Where("id IN ?", organizationIDs).
    Delete(&types.Organization{}).Error
}
