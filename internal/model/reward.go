package model

import (
	"time"

	"github.com/google/uuid"
)

// UnlimitedStock marks a reward that never runs out.
const UnlimitedStock = -1

type Reward struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	Points      int       `gorm:"not null;default:0"`
	Stock       int       `gorm:"not null;default:-1"`
	FamilyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Family Family `gorm:"foreignKey:FamilyID"`
}
