package model

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is a weekly recurring chore template. The task generator expands
// it into concrete tasks, one per matching weekday assignment.
type Schedule struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	Points      int       `gorm:"not null;default:0"`
	FamilyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Family      Family               `gorm:"foreignKey:FamilyID"`
	Assignments []ScheduleAssignment `gorm:"foreignKey:ScheduleID"`
}

// ScheduleAssignment maps one weekday (0=Sunday..6=Saturday) to an optional
// assignee. At most one assignment per weekday per schedule.
type ScheduleAssignment struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ScheduleID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_assignments_schedule_day"`
	DayOfWeek      int        `gorm:"not null;uniqueIndex:idx_assignments_schedule_day;check:day_of_week BETWEEN 0 AND 6"`
	AssignedToID   *uuid.UUID `gorm:"type:uuid"`
	AssignedToName string
}

// AssignmentFor returns the assignment for a weekday, or nil when the
// schedule has none for that day.
func (s *Schedule) AssignmentFor(dayOfWeek int) *ScheduleAssignment {
	for i := range s.Assignments {
		if s.Assignments[i].DayOfWeek == dayOfWeek {
			return &s.Assignments[i]
		}
	}
	return nil
}
