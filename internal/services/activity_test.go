package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/orgdir/orgdir-backend/internal/apierr"
	"github.com/orgdir/orgdir-backend/internal/types"
)

func TestBuildActivityTree(t *testing.T) {
	foodID := uuid.New()
	dairyID := uuid.New()
	cheeseID := uuid.New()
	sportID := uuid.New()

	rows := []*types.Activity{
		{ID: foodID, Name: "Food"},
		{ID: dairyID, Name: "Dairy products", ParentID: &foodID},
		{ID: cheeseID, Name: "Cheese", ParentID: &dairyID},
		{ID: sportID, Name: "Sport"},
		nil,
	}

	t.Run("full_forest", func(t *testing.T) {
		roots := buildActivityTree(rows, nil)
		if len(roots) != 2 {
			t.Fatalf("got %d roots, want 2", len(roots))
		}
		if roots[0].ID != foodID || roots[1].ID != sportID {
			t.Fatalf("unexpected root order: %v, %v", roots[0].Name, roots[1].Name)
		}
		if len(roots[0].Children) != 1 || roots[0].Children[0].ID != dairyID {
			t.Fatalf("Food should have Dairy as its only child")
		}
		grandchildren := roots[0].Children[0].Children
		if len(grandchildren) != 1 || grandchildren[0].ID != cheeseID {
			t.Fatalf("Dairy should have Cheese as its only child")
		}
		if len(roots[1].Children) != 0 {
			t.Fatalf("Sport should be a leaf, has %d children", len(roots[1].Children))
		}
	})

	t.Run("rooted_at_parent", func(t *testing.T) {
		// When the subtree query anchored at Food, only Food's
		// descendants come back as rows.
		subtreeRows := []*types.Activity{
			{ID: dairyID, Name: "Dairy products", ParentID: &foodID},
			{ID: cheeseID, Name: "Cheese", ParentID: &dairyID},
		}
		roots := buildActivityTree(subtreeRows, &foodID)
		if len(roots) != 1 || roots[0].ID != dairyID {
			t.Fatalf("expected Dairy as the single root, got %d roots", len(roots))
		}
		if len(roots[0].Children) != 1 || roots[0].Children[0].ID != cheeseID {
			t.Fatalf("Dairy should carry Cheese below it")
		}
	})

	t.Run("empty_rows", func(t *testing.T) {
		roots := buildActivityTree(nil, nil)
		if roots == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(roots) != 0 {
			t.Fatalf("expected no roots, got %d", len(roots))
		}
	})
}

func seedActivity(repo *fakeActivityRepo, name string, parentID *uuid.UUID) *types.Activity {
	activity := &types.Activity{ID: uuid.New(), Name: name, ParentID: parentID}
	repo.activities = append(repo.activities, activity)
	return activity
}

func wantAPIError(t *testing.T, err error, code string) {
	t.Helper()
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want an API error with code %q", err, code)
	}
	if apiErr.Code != code {
		t.Fatalf("got error code %q, want %q", apiErr.Code, code)
	}
}

func TestUpdateRejectsParentInsideSubtree(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := &activityService{log: testLogger(t), activityRepo: repo}
	ctx := context.Background()

	food := seedActivity(repo, "Food", nil)
	dairy := seedActivity(repo, "Dairy products", &food.ID)
	cheese := seedActivity(repo, "Cheese", &dairy.ID)

	cases := []struct {
		name   string
		parent uuid.UUID
	}{
		{"self", food.ID},
		{"direct_child", dairy.ID},
		{"grandchild", cheese.ID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parent := tc.parent
			_, err := svc.Update(ctx, nil, food.ID, UpdateActivityInput{ParentID: &parent})
			wantAPIError(t, err, "invalid_parent")
		})
	}
	if food.ParentID != nil {
		t.Fatalf("Food should still be a root, has parent %s", *food.ParentID)
	}
}

func TestUpdateDepthOnMove(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := &activityService{log: testLogger(t), activityRepo: repo}
	ctx := context.Background()

	food := seedActivity(repo, "Food", nil)
	dairy := seedActivity(repo, "Dairy products", &food.ID)
	seedActivity(repo, "Cheese", &dairy.ID)
	sport := seedActivity(repo, "Sport", nil)
	swimming := seedActivity(repo, "Swimming", &sport.ID)

	// Dairy carries Cheese below it, so under Swimming (level 2) the
	// subtree would reach level 4.
	_, err := svc.Update(ctx, nil, dairy.ID, UpdateActivityInput{ParentID: &swimming.ID})
	wantAPIError(t, err, "activity_depth_exceeded")
	if dairy.ParentID == nil || *dairy.ParentID != food.ID {
		t.Fatalf("rejected move should leave Dairy under Food")
	}

	// Under Sport (level 1) the same subtree bottoms out exactly at
	// level 3.
	updated, err := svc.Update(ctx, nil, dairy.ID, UpdateActivityInput{ParentID: &sport.ID})
	if err != nil {
		t.Fatalf("move under Sport: %v", err)
	}
	if updated.ParentID == nil || *updated.ParentID != sport.ID {
		t.Fatalf("Dairy should now hang under Sport")
	}
}

func TestTreeHeight(t *testing.T) {
	rootID := uuid.New()
	childID := uuid.New()
	grandchildID := uuid.New()
	siblingID := uuid.New()

	t.Run("leaf", func(t *testing.T) {
		if h := treeHeight(nil, rootID); h != 1 {
			t.Fatalf("got %d, want 1", h)
		}
	})

	t.Run("chain", func(t *testing.T) {
		rows := []*types.Activity{
			{ID: childID, ParentID: &rootID},
			{ID: grandchildID, ParentID: &childID},
		}
		if h := treeHeight(rows, rootID); h != 3 {
			t.Fatalf("got %d, want 3", h)
		}
	})

	t.Run("branching", func(t *testing.T) {
		rows := []*types.Activity{
			{ID: childID, ParentID: &rootID},
			{ID: siblingID, ParentID: &rootID},
			{ID: grandchildID, ParentID: &childID},
		}
		if h := treeHeight(rows, rootID); h != 3 {
			t.Fatalf("got %d, want 3", h)
		}
	})

	t.Run("malformed_rows_terminate", func(t *testing.T) {
		rows := []*types.Activity{
			{ID: childID, ParentID: &rootID},
			{ID: rootID, ParentID: &childID},
		}
		if h := treeHeight(rows, rootID); h != 2 {
			t.Fatalf("got %d, want 2", h)
		}
	})
}
