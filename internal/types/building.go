package types

import (
  "time"
  "github.com/google/uuid"
)

type Building struct {
  ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Address         string          `gorm:"uniqueIndex;not null;column:address" json:"address"`
  Latitude        float64         `gorm:"not null;column:latitude" json:"latitude"`
  Longitude       float64         `gorm:"not null;column:longitude" json:"longitude"`
  Organizations   []*Organization `gorm:"foreignKey:BuildingID" json:"organizations,omitempty"`
  CreatedAt       time.Time       `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Building) TableName() string {
  return "building"
}
