package types

import (
  "time"
  "github.com/google/uuid"
)

type Organization struct {
  ID          uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Name        string        `gorm:"index;not null;column:name" json:"name"`
  BuildingID  uuid.UUID     `gorm:"type:uuid;not null;column:building_id" json:"building_id"`
  Building    *Building     `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
  Phones      []*Phone      `gorm:"foreignKey:OrganizationID" json:"phones,omitempty"`
  Activities  []*Activity   `gorm:"many2many:organization_activity" json:"activities,omitempty"`
  CreatedAt   time.Time     `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt   time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (Organization) TableName() string {
  return "organization"
}
