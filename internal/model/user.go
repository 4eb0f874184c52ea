package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name           string    `gorm:"not null"`
	Email          string    `gorm:"not null;uniqueIndex:idx_users_email_family"`
	HashedPassword string    `gorm:"not null"`
	Role           string    `gorm:"not null;check:role IN ('parent', 'child')"`
	FamilyID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_users_email_family"`
	Points         int       `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`

	Family Family `gorm:"foreignKey:FamilyID"`
}

// User roles within a family
const (
	RoleParent = "parent" // manages tasks, rewards, and settings
	RoleChild  = "child"  // completes tasks and redeems rewards
)
