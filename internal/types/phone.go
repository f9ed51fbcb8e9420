package types

import (
  "time"
  "github.com/google/uuid"
)

type Phone struct {
  ID                uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Number            string      `gorm:"uniqueIndex;not null;column:number" json:"number"`
  OrganizationID    uuid.UUID   `gorm:"type:uuid;not null;column:organization_id" json:"organization_id"`
  CreatedAt         time.Time   `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt         time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Phone) TableName() string {
  return "phone"
}
