package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orgdir/orgdir-backend/internal/logger"
	"github.com/orgdir/orgdir-backend/internal/types"
)

// In-memory repo fakes. They ignore the transaction handle and keep rows
// in insertion order, which is what the list queries sort by.

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type fakeBuildingRepo struct {
	buildings []*types.Building
}

func (f *fakeBuildingRepo) Create(ctx context.Context, tx *gorm.DB, buildings []*types.Building) ([]*types.Building, error) {
	for _, building := range buildings {
		if building.ID == uuid.Nil {
			building.ID = uuid.New()
		}
		f.buildings = append(f.buildings, building)
	}
	return buildings, nil
}

func (f *fakeBuildingRepo) GetByIDs(ctx context.Context, tx *gorm.DB, buildingIDs []uuid.UUID) ([]*types.Building, error) {
	var results []*types.Building
	for _, building := range f.buildings {
		for _, id := range buildingIDs {
			if building.ID == id {
				results = append(results, building)
			}
		}
	}
	return results, nil
}

func (f *fakeBuildingRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Building, error) {
	return f.buildings, nil
}

func (f *fakeBuildingRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Building, error) {
	return sliceWindow(f.buildings, skip, limit), nil
}

func (f *fakeBuildingRepo) Delete(ctx context.Context, tx *gorm.DB, buildingIDs []uuid.UUID) error {
	kept := f.buildings[:0]
	for _, building := range f.buildings {
		if !containsID(buildingIDs, building.ID) {
			kept = append(kept, building)
		}
	}
	f.buildings = kept
	return nil
}

type fakeActivityRepo struct {
	activities []*types.Activity
}

func (f *fakeActivityRepo) Create(ctx context.Context, tx *gorm.DB, activities []*types.Activity) ([]*types.Activity, error) {
	for _, activity := range activities {
		if activity.ID == uuid.Nil {
			activity.ID = uuid.New()
		}
		f.activities = append(f.activities, activity)
	}
	return activities, nil
}

func (f *fakeActivityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) ([]*types.Activity, error) {
	var results []*types.Activity
	for _, activity := range f.activities {
		if containsID(activityIDs, activity.ID) {
			results = append(results, activity)
		}
	}
	return results, nil
}

func (f *fakeActivityRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Activity, error) {
	return sliceWindow(f.activities, skip, limit), nil
}

func (f *fakeActivityRepo) Update(ctx context.Context, tx *gorm.DB, activity *types.Activity) (*types.Activity, error) {
	for i, existing := range f.activities {
		if existing.ID == activity.ID {
			f.activities[i] = activity
			return activity, nil
		}
	}
	f.activities = append(f.activities, activity)
	return activity, nil
}

func (f *fakeActivityRepo) Delete(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) error {
	kept := f.activities[:0]
	for _, activity := range f.activities {
		if !containsID(activityIDs, activity.ID) {
			kept = append(kept, activity)
		}
	}
	f.activities = kept
	return nil
}

func (f *fakeActivityRepo) DescendantIDs(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, row := range f.descendants(parentID) {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (f *fakeActivityRepo) Subtree(ctx context.Context, tx *gorm.DB, parentID *uuid.UUID) ([]*types.Activity, error) {
	if parentID == nil {
		return f.activities, nil
	}
	return f.descendants(*parentID), nil
}

func (f *fakeActivityRepo) descendants(parentID uuid.UUID) []*types.Activity {
	var results []*types.Activity
	frontier := []uuid.UUID{parentID}
	seen := map[uuid.UUID]bool{parentID: true}
	for len(frontier) > 0 {
		next := []uuid.UUID{}
		for _, id := range frontier {
			for _, activity := range f.activities {
				if activity.ParentID == nil || *activity.ParentID != id || seen[activity.ID] {
					continue
				}
				seen[activity.ID] = true
				results = append(results, activity)
				next = append(next, activity.ID)
			}
		}
		frontier = next
	}
	return results
}

type fakeOrganizationRepo struct {
	organizations []*types.Organization
}

func (f *fakeOrganizationRepo) Create(ctx context.Context, tx *gorm.DB, organizations []*types.Organization) ([]*types.Organization, error) {
	for _, organization := range organizations {
		if organization.ID == uuid.Nil {
			organization.ID = uuid.New()
		}
		f.organizations = append(f.organizations, organization)
	}
	return organizations, nil
}

func (f *fakeOrganizationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, organizationIDs []uuid.UUID) ([]*types.Organization, error) {
	var results []*types.Organization
	for _, organization := range f.organizations {
		if containsID(organizationIDs, organization.ID) {
			results = append(results, organization)
		}
	}
	return results, nil
}

func (f *fakeOrganizationRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Organization, error) {
	return sliceWindow(f.organizations, skip, limit), nil
}

func (f *fakeOrganizationRepo) GetByBuildingIDs(ctx context.Context, tx *gorm.DB, buildingIDs []uuid.UUID) ([]*types.Organization, error) {
	var results []*types.Organization
	for _, organization := range f.organizations {
		if containsID(buildingIDs, organization.BuildingID) {
			results = append(results, organization)
		}
	}
	return results, nil
}

func (f *fakeOrganizationRepo) GetByActivityIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) ([]*types.Organization, error) {
	var results []*types.Organization
	for _, organization := range f.organizations {
		for _, activity := range organization.Activities {
			if containsID(activityIDs, activity.ID) {
				results = append(results, organization)
				break
			}
		}
	}
	return results, nil
}

func (f *fakeOrganizationRepo) SearchByName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Organization, error) {
	var results []*types.Organization
	for _, organization := range f.organizations {
		if strings.Contains(strings.ToLower(organization.Name), strings.ToLower(name)) {
			results = append(results, organization)
		}
	}
	return results, nil
}

func (f *fakeOrganizationRepo) Update(ctx context.Context, tx *gorm.DB, organization *types.Organization) (*types.Organization, error) {
	for i, existing := range f.organizations {
		if existing.ID == organization.ID {
			f.organizations[i] = organization
			return organization, nil
		}
	}
	f.organizations = append(f.organizations, organization)
	return organization, nil
}

func (f *fakeOrganizationRepo) ReplaceActivities(ctx context.Context, tx *gorm.DB, organization *types.Organization, activities []*types.Activity) error {
	organization.Activities = activities
	return nil
}

func (f *fakeOrganizationRepo) Delete(ctx context.Context, tx *gorm.DB, organizationIDs []uuid.UUID) error {
	kept := f.organizations[:0]
	for _, organization := range f.organizations {
		if !containsID(organizationIDs, organization.ID) {
			kept = append(kept, organization)
		}
	}
	f.organizations = kept
	return nil
}

type fakePhoneRepo struct {
	phones []*types.Phone

	// concurrentInserts simulates another writer sneaking the listed
	// numbers in just before the next Create call sees them.
	concurrentInserts map[string]uuid.UUID
}

func (f *fakePhoneRepo) Create(ctx context.Context, tx *gorm.DB, phones []*types.Phone) ([]*types.Phone, error) {
	raced := false
	for _, phone := range phones {
		if winnerOrg, ok := f.concurrentInserts[phone.Number]; ok {
			delete(f.concurrentInserts, phone.Number)
			f.phones = append(f.phones, &types.Phone{
				ID:             uuid.New(),
				Number:         phone.Number,
				OrganizationID: winnerOrg,
			})
			raced = true
		}
	}
	if raced {
		return nil, gorm.ErrDuplicatedKey
	}
	for _, phone := range phones {
		for _, existing := range f.phones {
			if existing.Number == phone.Number {
				return nil, gorm.ErrDuplicatedKey
			}
		}
	}
	for _, phone := range phones {
		if phone.ID == uuid.Nil {
			phone.ID = uuid.New()
		}
		f.phones = append(f.phones, phone)
	}
	return phones, nil
}

func (f *fakePhoneRepo) GetByIDs(ctx context.Context, tx *gorm.DB, phoneIDs []uuid.UUID) ([]*types.Phone, error) {
	var results []*types.Phone
	for _, phone := range f.phones {
		if containsID(phoneIDs, phone.ID) {
			results = append(results, phone)
		}
	}
	return results, nil
}

func (f *fakePhoneRepo) GetByNumbers(ctx context.Context, tx *gorm.DB, numbers []string) ([]*types.Phone, error) {
	var results []*types.Phone
	for _, phone := range f.phones {
		for _, number := range numbers {
			if phone.Number == number {
				results = append(results, phone)
			}
		}
	}
	return results, nil
}

func (f *fakePhoneRepo) Update(ctx context.Context, tx *gorm.DB, phone *types.Phone) (*types.Phone, error) {
	for i, existing := range f.phones {
		if existing.ID == phone.ID {
			f.phones[i] = phone
			return phone, nil
		}
	}
	f.phones = append(f.phones, phone)
	return phone, nil
}

func (f *fakePhoneRepo) Delete(ctx context.Context, tx *gorm.DB, phoneIDs []uuid.UUID) error {
	kept := f.phones[:0]
	for _, phone := range f.phones {
		if !containsID(phoneIDs, phone.ID) {
			kept = append(kept, phone)
		}
	}
	f.phones = kept
	return nil
}

func (f *fakePhoneRepo) DeleteByOrganizationExcept(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID, keepNumbers []string) error {
	kept := f.phones[:0]
	for _, phone := range f.phones {
		if phone.OrganizationID == organizationID && !containsNumber(keepNumbers, phone.Number) {
			continue
		}
		kept = append(kept, phone)
	}
	f.phones = kept
	return nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func containsNumber(numbers []string, number string) bool {
	for _, candidate := range numbers {
		if candidate == number {
			return true
		}
	}
	return false
}

func sliceWindow[T any](rows []T, skip, limit int) []T {
	if skip >= len(rows) {
		return nil
	}
	rows = rows[skip:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
