package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/types"
)

type PhoneRepo interface {
  Create(ctx context.Context, tx *gorm.DB, phones []*types.Phone) ([]*types.Phone, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, phoneIDs []uuid.UUID) ([]*types.Phone, error)
  GetByNumbers(ctx context.Context, tx *gorm.DB, numbers []string) ([]*types.Phone, error)
  Update(ctx context.Context, tx *gorm.DB, phone *types.Phone) (*types.Phone, error)
  Delete(ctx context.Context, tx *gorm.DB, phoneIDs []uuid.UUID) error
  DeleteByOrganizationExcept(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID, keepNumbers []string) error
}

type phoneRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPhoneRepo(db *gorm.DB, baseLog *logger.Logger) PhoneRepo {
  repoLog := baseLog.With("repo", "PhoneRepo")
  return &phoneRepo{db: db, log: repoLog}
}

func (pr *phoneRepo) Create(ctx context.Context, tx *gorm.DB, phones []*types.Phone) ([]*types.Phone, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(phones) == 0 {
    return []*types.Phone{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&phones).Error; err != nil {
    return nil, err
  }

  return phones, nil
}

func (pr *phoneRepo) GetByIDs(ctx context.Context, tx *gorm.DB, phoneIDs []uuid.UUID) ([]*types.Phone, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Phone

  if len(phoneIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", phoneIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *phoneRepo) GetByNumbers(ctx context.Context, tx *gorm.DB, numbers []string) ([]*types.Phone, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Phone
  if len(numbers) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("number IN ?", numbers).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *phoneRepo) Update(ctx context.Context, tx *gorm.DB, phone *types.Phone) (*types.Phone, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if err := transaction.WithContext(ctx).Save(phone).Error; err != nil {
    return nil, err
  }
  return phone, nil
}

func (pr *phoneRepo) Delete(ctx context.Context, tx *gorm.DB, phoneIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(phoneIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("id IN ?", phoneIDs).
    Delete(&types.Phone{}).Error
}

// DeleteByOrganizationExcept drops an organization's phones that are not
// in keepNumbers. Used when an update replaces the phone list.
func (pr *phoneRepo) DeleteByOrganizationExcept(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID, keepNumbers []string) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  query := transaction.WithContext(ctx).
    Where("organization_id = ?", organizationID)
  if len(keepNumbers) > 0 {
    query = query.Where("number NOT IN ?", keepNumbers)
  }
  return query.Delete(&types.Phone{}).Error
}
