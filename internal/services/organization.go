package services

import (
  "context"
  "errors"
  "fmt"
  "net/http"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/orgdir/orgdir-backend/internal/apierr"
  "github.com/orgdir/orgdir-backend/internal/geo"
  "github.com/orgdir/orgdir-backend/internal/logger"
  "github.com/orgdir/orgdir-backend/internal/repos"
  "github.com/orgdir/orgdir-backend/internal/types"
)

type CreateOrganizationInput struct {
  Name         string      `json:"name"`
  BuildingID   uuid.UUID   `json:"building_id"`
  PhoneNumbers []string    `json:"phone_numbers"`
  ActivityIDs  []uuid.UUID `json:"activity_ids"`
}

type UpdateOrganizationInput struct {
  Name         *string      `json:"name"`
  BuildingID   *uuid.UUID   `json:"building_id"`
  PhoneNumbers *[]string    `json:"phone_numbers"`
  ActivityIDs  *[]uuid.UUID `json:"activity_ids"`
}

type RadiusSearchInput struct {
  Latitude  float64 `json:"latitude"`
  Longitude float64 `json:"longitude"`
  Radius    float64 `json:"radius"`
  Unit      string  `json:"unit"`
}

type OrganizationService interface {
  Create(ctx context.Context, tx *gorm.DB, input CreateOrganizationInput) (*types.Organization, error)
  Get(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID) (*types.Organization, error)
  List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Organization, error)
  Update(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID, input UpdateOrganizationInput) (*types.Organization, error)
  Delete(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID) error
  Search(ctx context.Context, tx *gorm.DB, name string) ([]*types.Organization, error)
  GetByBuilding(ctx context.Context, tx *gorm.DB, buildingID uuid.UUID) ([]*types.Organization, error)
  GetByActivity(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) ([]*types.Organization, error)
  GetByRadius(ctx context.Context, tx *gorm.DB, input RadiusSearchInput) ([]*types.Organization, error)
}

type organizationService struct {
  db               *gorm.DB
  log              *logger.Logger
  organizationRepo repos.OrganizationRepo
  buildingRepo     repos.BuildingRepo
  activityRepo     repos.ActivityRepo
  phoneRepo        repos.PhoneRepo
}

func NewOrganizationService(
  db *gorm.DB,
  baseLog *logger.Logger,
  organizationRepo repos.OrganizationRepo,
  buildingRepo repos.BuildingRepo,
  activityRepo repos.ActivityRepo,
  phoneRepo repos.PhoneRepo,
) OrganizationService {
  serviceLog := baseLog.With("service", "OrganizationService")
  return &organizationService{
    db:               db,
    log:              serviceLog,
    organizationRepo: organizationRepo,
    buildingRepo:     buildingRepo,
    activityRepo:     activityRepo,
    phoneRepo:        phoneRepo,
  }
}

func (os *organizationService) Create(ctx context.Context, tx *gorm.DB, input CreateOrganizationInput) (*types.Organization, error) {
  if input.Name == "" {
    return nil, apierr.New(http.StatusBadRequest, "name_required", errors.New("name must not be empty"))
  }
  if dup := firstDuplicate(input.PhoneNumbers); dup != "" {
    return nil, apierr.New(http.StatusBadRequest, "duplicate_phone_numbers", fmt.Errorf("phone number %q listed more than once", dup))
  }

  var created *types.Organization
  err := os.inTransaction(ctx, tx, func(transaction *gorm.DB) error {
    buildings, err := os.buildingRepo.GetByIDs(ctx, transaction, []uuid.UUID{input.BuildingID})
    if err != nil {
      return fmt.Errorf("load building: %w", err)
    }
    if len(buildings) == 0 {
      return apierr.New(http.StatusBadRequest, "building_not_found", fmt.Errorf("building %s not found", input.BuildingID))
    }

    organization := &types.Organization{
      Name:       input.Name,
      BuildingID: input.BuildingID,
    }
    if _, err := os.organizationRepo.Create(ctx, transaction, []*types.Organization{organization}); err != nil {
      return fmt.Errorf("create organization: %w", err)
    }

    if err := os.assignPhones(ctx, transaction, organization.ID, input.PhoneNumbers); err != nil {
      return err
    }

    if len(input.ActivityIDs) > 0 {
      // Unknown activity ids are dropped silently rather than failing
      // the whole create.
      activities, err := os.activityRepo.GetByIDs(ctx, transaction, input.ActivityIDs)
      if err != nil {
        return fmt.Errorf("load activities: %w", err)
      }
      if err := os.organizationRepo.ReplaceActivities(ctx, transaction, organization, activities); err != nil {
        return fmt.Errorf("attach activities: %w", err)
      }
    }

    created = organization
    return nil
  })
  if err != nil {
    return nil, err
  }
  return os.Get(ctx, tx, created.ID)
}

func (os *organizationService) Get(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID) (*types.Organization, error) {
  organizations, err := os.organizationRepo.GetByIDs(ctx, tx, []uuid.UUID{organizationID})
  if err != nil {
    return nil, fmt.Errorf("load organization: %w", err)
  }
  if len(organizations) == 0 {
    return nil, apierr.New(http.StatusNotFound, "organization_not_found", fmt.Errorf("organization %s not found", organizationID))
  }
  return organizations[0], nil
}

func (os *organizationService) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Organization, error) {
  if skip < 0 {
    skip = 0
  }
  if limit <= 0 {
    limit = defaultListLimit
  }
  organizations, err := os.organizationRepo.List(ctx, tx, skip, limit)
  if err != nil {
    return nil, fmt.Errorf("list organizations: %w", err)
  }
  return organizations, nil
}

func (os *organizationService) Update(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID, input UpdateOrganizationInput) (*types.Organization, error) {
  if input.PhoneNumbers != nil {
    if dup := firstDuplicate(*input.PhoneNumbers); dup != "" {
      return nil, apierr.New(http.StatusBadRequest, "duplicate_phone_numbers", fmt.Errorf("phone number %q listed more than once", dup))
    }
  }

  err := os.inTransaction(ctx, tx, func(transaction *gorm.DB) error {
    organization, err := os.Get(ctx, transaction, organizationID)
    if err != nil {
      return err
    }

    if input.Name != nil {
      if *input.Name == "" {
        return apierr.New(http.StatusBadRequest, "name_required", errors.New("name must not be empty"))
      }
      organization.Name = *input.Name
    }
    if input.BuildingID != nil {
      buildings, err := os.buildingRepo.GetByIDs(ctx, transaction, []uuid.UUID{*input.BuildingID})
      if err != nil {
        return fmt.Errorf("load building: %w", err)
      }
      if len(buildings) == 0 {
        return apierr.New(http.StatusBadRequest, "building_not_found", fmt.Errorf("building %s not found", *input.BuildingID))
      }
      organization.BuildingID = *input.BuildingID
    }
    if _, err := os.organizationRepo.Update(ctx, transaction, organization); err != nil {
      return fmt.Errorf("update organization: %w", err)
    }

    if input.PhoneNumbers != nil {
      if err := os.phoneRepo.DeleteByOrganizationExcept(ctx, transaction, organizationID, *input.PhoneNumbers); err != nil {
        return fmt.Errorf("prune phones: %w", err)
      }
      if err := os.assignPhones(ctx, transaction, organizationID, *input.PhoneNumbers); err != nil {
        return err
      }
    }

    if input.ActivityIDs != nil {
      activities, err := os.activityRepo.GetByIDs(ctx, transaction, *input.ActivityIDs)
      if err != nil {
        return fmt.Errorf("load activities: %w", err)
      }
      if err := os.organizationRepo.ReplaceActivities(ctx, transaction, organization, activities); err != nil {
        return fmt.Errorf("replace activities: %w", err)
      }
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  return os.Get(ctx, tx, organizationID)
}

func (os *organizationService) Delete(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID) error {
  if _, err := os.Get(ctx, tx, organizationID); err != nil {
    return err
  }
  if err := os.organizationRepo.Delete(ctx, tx, []uuid.UUID{organizationID}); err != nil {
    os.log.Error("Delete organization failed", "error", err, "organization_id", organizationID)
    return fmt.Errorf("delete organization: %w", err)
  }
  return nil
}

func (os *organizationService) Search(ctx context.Context, tx *gorm.DB, name string) ([]*types.Organization, error) {
  name = strings.TrimSpace(name)
  if name == "" {
    return nil, apierr.New(http.StatusBadRequest, "name_required", errors.New("query parameter name must not be empty"))
  }
  organizations, err := os.organizationRepo.SearchByName(ctx, tx, name)
  if err != nil {
    return nil, fmt.Errorf("search organizations: %w", err)
  }
  return organizations, nil
}

func (os *organizationService) GetByBuilding(ctx context.Context, tx *gorm.DB, buildingID uuid.UUID) ([]*types.Organization, error) {
  organizations, err := os.organizationRepo.GetByBuildingIDs(ctx, tx, []uuid.UUID{buildingID})
  if err != nil {
    return nil, fmt.Errorf("load organizations by building: %w", err)
  }
  return organizations, nil
}

func (os *organizationService) GetByActivity(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) ([]*types.Organization, error) {
  activities, err := os.activityRepo.GetByIDs(ctx, tx, []uuid.UUID{activityID})
  if err != nil {
    return nil, fmt.Errorf("load activity: %w", err)
  }
  if len(activities) == 0 {
    return []*types.Organization{}, nil
  }
  descendantIDs, err := os.activityRepo.DescendantIDs(ctx, tx, activityID)
  if err != nil {
    return nil, fmt.Errorf("load descendant activities: %w", err)
  }
  allIDs := append([]uuid.UUID{activityID}, descendantIDs...)

  organizations, err := os.organizationRepo.GetByActivityIDs(ctx, tx, allIDs)
  if err != nil {
    return nil, fmt.Errorf("load organizations by activity: %w", err)
  }
  return organizations, nil
}

func (os *organizationService) GetByRadius(ctx context.Context, tx *gorm.DB, input RadiusSearchInput) ([]*types.Organization, error) {
  if err := geo.ValidatePoint(input.Latitude, input.Longitude); err != nil {
    return nil, apierr.New(http.StatusBadRequest, "invalid_coordinates", err)
  }
  if input.Radius <= 0 {
    return nil, apierr.New(http.StatusBadRequest, "invalid_radius", fmt.Errorf("radius must be positive, got %v", input.Radius))
  }
  unit, err := geo.ParseUnit(input.Unit)
  if err != nil {
    return nil, apierr.New(http.StatusBadRequest, "invalid_unit", err)
  }
  radiusMeters := unit.ToMeters(input.Radius)

  buildings, err := os.buildingRepo.GetAll(ctx, tx)
  if err != nil {
    return nil, fmt.Errorf("load buildings: %w", err)
  }
  buildingIDs := nearbyBuildingIDs(buildings, input.Latitude, input.Longitude, radiusMeters)
  if len(buildingIDs) == 0 {
    return []*types.Organization{}, nil
  }

  organizations, err := os.organizationRepo.GetByBuildingIDs(ctx, tx, buildingIDs)
  if err != nil {
    return nil, fmt.Errorf("load organizations by radius: %w", err)
  }
  return organizations, nil
}

// assignPhones points each listed number at the organization, creating
// numbers that do not exist yet and stealing ones that belong elsewhere.
func (os *organizationService) assignPhones(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID, numbers []string) error {
  if len(numbers) == 0 {
    return nil
  }
  existing, err := os.phoneRepo.GetByNumbers(ctx, tx, numbers)
  if err != nil {
    return fmt.Errorf("load phones: %w", err)
  }
  existingByNumber := make(map[string]*types.Phone, len(existing))
  for _, phone := range existing {
    existingByNumber[phone.Number] = phone
  }

  newPhones := make([]*types.Phone, 0, len(numbers))
  for _, number := range numbers {
    if phone, ok := existingByNumber[number]; ok {
      if phone.OrganizationID != organizationID {
        phone.OrganizationID = organizationID
        if _, err := os.phoneRepo.Update(ctx, tx, phone); err != nil {
          return fmt.Errorf("reassign phone %q: %w", number, err)
        }
      }
      continue
    }
    newPhones = append(newPhones, &types.Phone{Number: number, OrganizationID: organizationID})
  }
  if len(newPhones) == 0 {
    return nil
  }
  _, err = os.phoneRepo.Create(ctx, tx, newPhones)
  if err == nil {
    return nil
  }
  if !errors.Is(err, gorm.ErrDuplicatedKey) {
    return fmt.Errorf("create phones: %w", err)
  }

  // Lost a race against a concurrent insert of one of the numbers: fall
  // back to reassigning the rows that won and creating the remainder.
  pendingNumbers := make([]string, 0, len(newPhones))
  for _, phone := range newPhones {
    pendingNumbers = append(pendingNumbers, phone.Number)
  }
  winners, err := os.phoneRepo.GetByNumbers(ctx, tx, pendingNumbers)
  if err != nil {
    return fmt.Errorf("load phones after duplicate: %w", err)
  }
  winnersByNumber := make(map[string]*types.Phone, len(winners))
  for _, phone := range winners {
    winnersByNumber[phone.Number] = phone
  }

  remaining := make([]*types.Phone, 0, len(newPhones))
  for _, phone := range newPhones {
    winner, ok := winnersByNumber[phone.Number]
    if !ok {
      remaining = append(remaining, phone)
      continue
    }
    if winner.OrganizationID != organizationID {
      winner.OrganizationID = organizationID
      if _, err := os.phoneRepo.Update(ctx, tx, winner); err != nil {
        return fmt.Errorf("reassign phone %q: %w", winner.Number, err)
      }
    }
  }
  if _, err := os.phoneRepo.Create(ctx, tx, remaining); err != nil {
    return fmt.Errorf("create phones: %w", err)
  }
  return nil
}

func (os *organizationService) inTransaction(ctx context.Context, tx *gorm.DB, fn func(transaction *gorm.DB) error) error {
  if tx != nil {
    return fn(tx)
  }
  return os.db.WithContext(ctx).Transaction(fn)
}

// nearbyBuildingIDs filters buildings to those within radiusMeters of
// the center point, by great-circle distance.
func nearbyBuildingIDs(buildings []*types.Building, lat, lon, radiusMeters float64) []uuid.UUID {
  ids := make([]uuid.UUID, 0, len(buildings))
  for _, building := range buildings {
    if building == nil {
      continue
    }
    if geo.Haversine(lat, lon, building.Latitude, building.Longitude) <= radiusMeters {
      ids = append(ids, building.ID)
    }
  }
  return ids
}

// firstDuplicate returns the first phone number that appears more than
// once, or "" when all numbers are distinct.
func firstDuplicate(numbers []string) string {
  seen := make(map[string]struct{}, len(numbers))
  for _, number := range numbers {
    if _, ok := seen[number]; ok {
      return number
    }
    seen[number] = struct{}{}
  }
  return ""
}
