package services

import (
  "context"
  "errors"
  "fmt"
  "net/http"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/orgdir/orgdir-backend/internal/apierr"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/repos"
  "github.com/orgdir/orgdir-backend/internal/types"
)

type CreatePhoneInput struct {
  Number         string    `json:"number"`
  OrganizationID uuid.UUID `json:"organization_id"`
}

type PhoneService interface {
  // CreateOrReassign creates a phone, or moves an existing number to the
  // given organization. Numbers are globally unique.
  CreateOrReassign(ctx context.Context, tx *gorm.DB, input CreatePhoneInput) (*types.Phone, error)
  Get(ctx context.Context, tx *gorm.DB, phoneID uuid.UUID) (*types.Phone, error)
  Delete(ctx context.Context, tx *gorm.DB, phoneID uuid.UUID) error
}

type phoneService struct {
  db               *gorm.DB
  log              *logger.Logger
  phoneRepo        repos.PhoneRepo
  organizationRepo repos.OrganizationRepo
}

func NewPhoneService(db *gorm.DB, baseLog *logger.Logger, phoneRepo repos.PhoneRepo, organizationRepo repos.OrganizationRepo) PhoneService {
  serviceLog := baseLog.With("service", "PhoneService")
  return &phoneService{db: db, log: serviceLog, phoneRepo: phoneRepo, organizationRepo: organizationRepo}
}

func (ps *phoneService) CreateOrReassign(ctx context.Context, tx *gorm.DB, input CreatePhoneInput) (*types.Phone, error) {
  if input.Number == "" {
    return nil, apierr.New(http.StatusBadRequest, "number_required", errors.New("number must not be empty"))
  }
  orgs, err := ps.organizationRepo.GetByIDs(ctx, tx, []uuid.UUID{input.OrganizationID})
  if err != nil {
    return nil, fmt.Errorf("load organization: %w", err)
  }
  if len(orgs) == 0 {
    return nil, apierr.New(http.StatusBadRequest, "organization_not_found", fmt.Errorf("organization %s not found", input.OrganizationID))
  }

  existing, err := ps.phoneRepo.GetByNumbers(ctx, tx, []string{input.Number})
  if err != nil {
    return nil, fmt.Errorf("load phone: %w", err)
  }
  if len(existing) > 0 {
    phone := existing[0]
    phone.OrganizationID = input.OrganizationID
    return ps.phoneRepo.Update(ctx, tx, phone)
  }

  phone := &types.Phone{
    Number:         input.Number,
    OrganizationID: input.OrganizationID,
  }
  created, err := ps.phoneRepo.Create(ctx, tx, []*types.Phone{phone})
  if err == nil {
    return created[0], nil
  }
  if !errors.Is(err, gorm.ErrDuplicatedKey) {
    ps.log.Error("Create phone failed", "error", err)
    return nil, fmt.Errorf("create phone: %w", err)
  }

  // Lost a race against a concurrent insert of the same number: fall
  // back to reassigning the row that won.
  existing, err = ps.phoneRepo.GetByNumbers(ctx, tx, []string{input.Number})
  if err != nil {
    return nil, fmt.Errorf("load phone after duplicate: %w", err)
  }
  if len(existing) == 0 {
    return nil, fmt.Errorf("phone %q could not be created or fetched after duplicate key", input.Number)
  }
  phone = existing[0]
  phone.OrganizationID = input.OrganizationID
  return ps.phoneRepo.Update(ctx, tx, phone)
}

func (ps *phoneService) Get(ctx context.Context, tx *gorm.DB, phoneID uuid.UUID) (*types.Phone, error) {
  phones, err := ps.phoneRepo.GetByIDs(ctx, tx, []uuid.UUID{phoneID})
  if err != nil {
    return nil, fmt.Errorf("load phone: %w", err)
  }
  if len(phones) == 0 {
    return nil, apierr.New(http.StatusNotFound, "phone_not_found", fmt.Errorf("phone %s not found", phoneID))
  }
  return phones[0], nil
}

func (ps *phoneService) Delete(ctx context.Context, tx *gorm.DB, phoneID uuid.UUID) error {
  if _, err := ps.Get(ctx, tx, phoneID); err != nil {
    return err
  }
  if err := ps.phoneRepo.Delete(ctx, tx, []uuid.UUID{phoneID}); err != nil {
    ps.log.Error("Delete phone failed", "error", err, "phone_id", phoneID)
    return fmt.Errorf("delete phone: %w", err)
  }
  return nil
}
