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

type CreateActivityInput struct {
  Name     string     `json:"name"`
  ParentID *uuid.UUID `json:"parent_id"`
}

type UpdateActivityInput struct {
  Name     *string    `json:"name"`
  ParentID *uuid.UUID `json:"parent_id"`
}

// ActivityNode is one node of the assembled activity tree.
type ActivityNode struct {
  ID       uuid.UUID       `json:"id"`
  Name     string          `json:"name"`
  ParentID *uuid.UUID      `json:"parent_id,omitempty"`
  Children []*ActivityNode `json:"children"`
}

type ActivityService interface {
  Create(ctx context.Context, tx *gorm.DB, input CreateActivityInput) (*types.Activity, error)
  Get(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) (*types.Activity, error)
  List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Activity, error)
  Update(ctx context.Context, tx *gorm.DB, activityID uuid.UUID, input UpdateActivityInput) (*types.Activity, error)
  Delete(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) error
  Tree(ctx context.Context, tx *gorm.DB, parentID *uuid.UUID) ([]*ActivityNode, error)
}

type activityService struct {
  db           *gorm.DB
  log          *logger.Logger
  activityRepo repos.ActivityRepo
}

func NewActivityService(db *gorm.DB, baseLog *logger.Logger, activityRepo repos.ActivityRepo) ActivityService {
  serviceLog := baseLog.With("service", "ActivityService")
  return &activityService{db: db, log: serviceLog, activityRepo: activityRepo}
}

func (as *activityService) Create(ctx context.Context, tx *gorm.DB, input CreateActivityInput) (*types.Activity, error) {
  if input.Name == "" {
    return nil, apierr.New(http.StatusBadRequest, "name_required", errors.New("name must not be empty"))
  }
  if input.ParentID != nil {
    parentLevel, err := as.level(ctx, tx, *input.ParentID)
    if err != nil {
      return nil, err
    }
    if parentLevel >= types.MaxActivityDepth {
      return nil, apierr.New(http.StatusBadRequest, "activity_depth_exceeded",
        fmt.Errorf("activities are limited to %d levels", types.MaxActivityDepth))
    }
  }

  activity := &types.Activity{
    Name:     input.Name,
    ParentID: input.ParentID,
  }
  created, err := as.activityRepo.Create(ctx, tx, []*types.Activity{activity})
  if err != nil {
    as.log.Error("Create activity failed", "error", err)
    return nil, fmt.Errorf("create activity: %w", err)
  }
  return created[0], nil
}

func (as *activityService) Get(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) (*types.Activity, error) {
  activities, err := as.activityRepo.GetByIDs(ctx, tx, []uuid.UUID{activityID})
  if err != nil {
    return nil, fmt.Errorf("load activity: %w", err)
  }
  if len(activities) == 0 {
    return nil, apierr.New(http.StatusNotFound, "activity_not_found", fmt.Errorf("activity %s not found", activityID))
  }
  return activities[0], nil
}

func (as *activityService) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Activity, error) {
  if skip < 0 {
    skip = 0
  }
  if limit <= 0 {
    limit = defaultListLimit
  }
  activities, err := as.activityRepo.List(ctx, tx, skip, limit)
  if err != nil {
    return nil, fmt.Errorf("list activities: %w", err)
  }
  return activities, nil
}

func (as *activityService) Update(ctx context.Context, tx *gorm.DB, activityID uuid.UUID, input UpdateActivityInput) (*types.Activity, error) {
  activity, err := as.Get(ctx, tx, activityID)
  if err != nil {
    return nil, err
  }

  if input.Name != nil {
    if *input.Name == "" {
      return nil, apierr.New(http.StatusBadRequest, "name_required", errors.New("name must not be empty"))
    }
    activity.Name = *input.Name
  }
  if input.ParentID != nil {
    if *input.ParentID == activityID {
      return nil, apierr.New(http.StatusBadRequest, "invalid_parent", errors.New("activity cannot be its own parent"))
    }
    chain, err := as.parentChain(ctx, tx, *input.ParentID)
    if err != nil {
      return nil, err
    }
    // The new parent must not sit inside the moved subtree, or the
    // hierarchy would close into a cycle.
    for _, ancestor := range chain {
      if ancestor.ID == activityID {
        return nil, apierr.New(http.StatusBadRequest, "invalid_parent",
          errors.New("activity cannot be moved under its own descendant"))
      }
    }
    descendants, err := as.activityRepo.Subtree(ctx, tx, &activityID)
    if err != nil {
      return nil, fmt.Errorf("load activity subtree: %w", err)
    }
    if len(chain)+treeHeight(descendants, activityID) > types.MaxActivityDepth {
      return nil, apierr.New(http.StatusBadRequest, "activity_depth_exceeded",
        fmt.Errorf("activities are limited to %d levels", types.MaxActivityDepth))
    }
    activity.ParentID = input.ParentID
  }

  updated, err := as.activityRepo.Update(ctx, tx, activity)
  if err != nil {
    as.log.Error("Update activity failed", "error", err, "activity_id", activityID)
    return nil, fmt.Errorf("update activity: %w", err)
  }
  return updated, nil
}

func (as *activityService) Delete(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) error {
  if _, err := as.Get(ctx, tx, activityID); err != nil {
    return err
  }
  if err := as.activityRepo.Delete(ctx, tx, []uuid.UUID{activityID}); err != nil {
    as.log.Error("Delete activity failed", "error", err, "activity_id", activityID)
    return fmt.Errorf("delete activity: %w", err)
  }
  return nil
}

func (as *activityService) Tree(ctx context.Context, tx *gorm.DB, parentID *uuid.UUID) ([]*ActivityNode, error) {
  if parentID != nil {
    if _, err := as.Get(ctx, tx, *parentID); err != nil {
      return nil, err
    }
  }
  rows, err := as.activityRepo.Subtree(ctx, tx, parentID)
  if err != nil {
    return nil, fmt.Errorf("load activity subtree: %w", err)
  }
  return buildActivityTree(rows, parentID), nil
}

// level returns the 1-based depth of an activity.
func (as *activityService) level(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) (int, error) {
  chain, err := as.parentChain(ctx, tx, activityID)
  if err != nil {
    return 0, err
  }
  return len(chain), nil
}

// parentChain loads activityID and its ancestors, nearest first. The
// walk is bounded by MaxActivityDepth so a corrupted parent chain cannot
// loop forever.
func (as *activityService) parentChain(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) ([]*types.Activity, error) {
  current, err := as.activityRepo.GetByIDs(ctx, tx, []uuid.UUID{activityID})
  if err != nil {
    return nil, fmt.Errorf("load parent activity: %w", err)
  }
  if len(current) == 0 {
    return nil, apierr.New(http.StatusBadRequest, "parent_not_found", fmt.Errorf("parent activity %s not found", activityID))
  }

  chain := []*types.Activity{current[0]}
  node := current[0]
  for node.ParentID != nil && len(chain) <= types.MaxActivityDepth {
    parents, err := as.activityRepo.GetByIDs(ctx, tx, []uuid.UUID{*node.ParentID})
    if err != nil {
      return nil, fmt.Errorf("load parent activity: %w", err)
    }
    if len(parents) == 0 {
      break
    }
    node = parents[0]
    chain = append(chain, node)
  }
  return chain, nil
}

// treeHeight is the number of levels in the subtree rooted at rootID: 1
// for a leaf plus the longest chain of descendants found in rows. Nodes
// already visited are skipped so malformed rows cannot loop.
func treeHeight(rows []*types.Activity, rootID uuid.UUID) int {
  childrenByParent := map[uuid.UUID][]uuid.UUID{}
  for _, row := range rows {
    if row == nil || row.ParentID == nil {
      continue
    }
    childrenByParent[*row.ParentID] = append(childrenByParent[*row.ParentID], row.ID)
  }

  height := 0
  frontier := []uuid.UUID{rootID}
  seen := map[uuid.UUID]bool{rootID: true}
  for len(frontier) > 0 {
    height++
    next := []uuid.UUID{}
    for _, id := range frontier {
      for _, childID := range childrenByParent[id] {
        if seen[childID] {
          continue
        }
        seen[childID] = true
        next = append(next, childID)
      }
    }
    frontier = next
  }
  return height
}

// buildActivityTree turns flat subtree rows into nested nodes. Roots are
// the rows whose parent matches rootParentID (nil selects top-level
// activities).
func buildActivityTree(rows []*types.Activity, rootParentID *uuid.UUID) []*ActivityNode {
  childrenByParent := map[string][]*ActivityNode{}
  nodes := make([]*ActivityNode, 0, len(rows))

  for _, row := range rows {
    if row == nil {
      continue
    }
    node := &ActivityNode{
      ID:       row.ID,
      Name:     row.Name,
      ParentID: row.ParentID,
      Children: []*ActivityNode{},
    }
    nodes = append(nodes, node)
    key := parentKey(row.ParentID)
    childrenByParent[key] = append(childrenByParent[key], node)
  }

  for _, node := range nodes {
    if children, ok := childrenByParent[node.ID.String()]; ok {
      node.Children = children
    }
  }

  roots := childrenByParent[parentKey(rootParentID)]
  if roots == nil {
    roots = []*ActivityNode{}
  }
  return roots
}

func parentKey(parentID *uuid.UUID) string {
  if parentID == nil {
    return ""
  }
  return parentID.String()
}
