package model

import (
	"time"

	"github.com/google/uuid"
)

// StudySchedule is a weekly study block for one child.
type StudySchedule struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Subject   string    `gorm:"not null"`
	Notes     string
	FamilyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	DayOfWeek int       `gorm:"not null;check:day_of_week BETWEEN 0 AND 6"`
	StartTime string    `gorm:"not null"` // "HH:MM"
	EndTime   string    `gorm:"not null"` // "HH:MM"
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
