package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/types"
)

type ActivityRepo interface {
  Create(ctx context.Context, tx *gorm.DB, activities []*types.Activity) ([]*types.Activity, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) ([]*types.Activity, error)
  List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Activity, error)
  Update(ctx context.Context, tx *gorm.DB, activity *types.Activity) (*types.Activity, error)
  Delete(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) error
  DescendantIDs(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]uuid.UUID, error)
  Subtree(ctx context.Context, tx *gorm.DB, parentID *uuid.UUID) ([]*types.Activity, error)
}

type activityRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
  repoLog := baseLog.With("repo", "ActivityRepo")
  return &activityRepo{db: db, log: repoLog}
}

func (ar *activityRepo) Create(ctx context.Context, tx *gorm.DB, activities []*types.Activity) ([]*types.Activity, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if len(activities) == 0 {
    return []*types.Activity{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&activities).Error; err != nil {
    return nil, err
  }

  return activities, nil
}

func (ar *activityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) ([]*types.Activity, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Activity

  if len(activityIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", activityIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ar *activityRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Activity, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Activity
  if err := transaction.WithContext(ctx).
    Order("created_at ASC").
    Offset(skip).
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ar *activityRepo) Update(ctx context.Context, tx *gorm.DB, activity *types.Activity) (*types.Activity, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if err := transaction.WithContext(ctx).
    Omit("Children").
    Save(activity).Error; err != nil {
    return nil, err
  }
  return activity, nil
}

func (ar *activityRepo) Delete(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if len(activityIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("id IN ?", activityIDs).
    Delete(&types.Activity{}).Error
}

// DescendantIDs walks the hierarchy below parentID with a recursive CTE
// and returns every descendant id, any depth.
func (ar *activityRepo) DescendantIDs(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []uuid.UUID
  query := `
    WITH RECURSIVE tree AS (
      SELECT id FROM activity WHERE parent_id = ?
      UNION ALL
      SELECT a.id FROM activity a
      JOIN tree t ON a.parent_id = t.id
    )
    SELECT id FROM tree
  `
  if err := transaction.WithContext(ctx).
    Raw(query, parentID).
    Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// Subtree returns the activities rooted at parentID (roots themselves
// excluded the same way DescendantIDs excludes the parent), or the whole
// forest when parentID is nil. Rows come back flat; tree assembly is the
// service's job.
func (ar *activityRepo) Subtree(ctx context.Context, tx *gorm.DB, parentID *uuid.UUID) ([]*types.Activity, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Activity
  anchor := `SELECT id, name, parent_id, created_at, updated_at FROM activity WHERE parent_id IS NULL`
  args := []interface{}{}
  if parentID != nil {
    anchor = `SELECT id, name, parent_id, created_at, updated_at FROM activity WHERE parent_id = ?`
    args = append(args, *parentID)
  }
  query := `
    WITH RECURSIVE tree AS (
      ` + anchor + `
      UNION ALL
      SELECT a.id, a.name, a.parent_id, a.created_at, a.updated_at FROM activity a
      JOIN tree t ON a.parent_id = t.id
    )
    SELECT id, name, parent_id, created_at, updated_at FROM tree
  `
  if err := transaction.WithContext(ctx).
    Raw(query, args...).
    Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
