package types

import (
  "time"
  "github.com/google/uuid"
)

// MaxActivityDepth bounds the activity hierarchy: a root activity is at
// level 1 and no activity may sit deeper than level 3.
const MaxActivityDepth = 3

type Activity struct {
  ID          uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Name        string        `gorm:"index;not null;column:name" json:"name"`
  ParentID    *uuid.UUID    `gorm:"type:uuid;column:parent_id" json:"parent_id,omitempty"`
  Children    []*Activity   `gorm:"foreignKey:ParentID" json:"children,omitempty"`
  CreatedAt   time.Time     `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt   time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (Activity) TableName() string {
  return "activity"
}
