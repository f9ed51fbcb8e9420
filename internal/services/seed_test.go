package services

import (
	"context"
	"testing"

	"gorm.io/gorm"
)

func TestPopulateSeedsDirectory(t *testing.T) {
	buildingRepo := &fakeBuildingRepo{}
	activityRepo := &fakeActivityRepo{}
	organizationRepo := &fakeOrganizationRepo{}
	phoneRepo := &fakePhoneRepo{}
	log := testLogger(t)

	buildingService := NewBuildingService(nil, log, buildingRepo)
	activityService := NewActivityService(nil, log, activityRepo)
	organizationService := NewOrganizationService(nil, log, organizationRepo, buildingRepo, activityRepo, phoneRepo)

	ss := &seedService{
		log:                 log.With("service", "SeedService"),
		buildingService:     buildingService,
		activityService:     activityService,
		organizationService: organizationService,
	}

	ctx := context.Background()
	tx := &gorm.DB{}
	if err := ss.populate(ctx, tx); err != nil {
		t.Fatalf("populate: %v", err)
	}

	if len(buildingRepo.buildings) != 4 {
		t.Fatalf("got %d buildings, want 4", len(buildingRepo.buildings))
	}
	if len(activityRepo.activities) != 6 {
		t.Fatalf("got %d activities, want 6", len(activityRepo.activities))
	}

	organizations, err := organizationService.List(ctx, tx, 0, 0)
	if err != nil {
		t.Fatalf("list organizations: %v", err)
	}
	wantNames := []string{
		"School No. 1",
		"Youth Sports Academy",
		"Riverside Cheese Shop",
		"Nevsky Dairy Market",
	}
	if len(organizations) != len(wantNames) {
		t.Fatalf("got %d organizations, want %d", len(organizations), len(wantNames))
	}
	for i, want := range wantNames {
		if organizations[i].Name != want {
			t.Fatalf("organization %d is %q, want %q", i, organizations[i].Name, want)
		}
	}

	// Every organization keeps at least one phone, and the academy its
	// pair.
	phonesByOrg := map[string]int{}
	for _, phone := range phoneRepo.phones {
		phonesByOrg[phone.OrganizationID.String()]++
	}
	for i, organization := range organizations {
		want := 1
		if organization.Name == "Youth Sports Academy" {
			want = 2
		}
		if got := phonesByOrg[organization.ID.String()]; got != want {
			t.Fatalf("organization %d (%s) has %d phones, want %d", i, organization.Name, got, want)
		}
	}
}
