package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title           string    `gorm:"not null"`
	Description     string
	Points          int        `gorm:"not null;default:0"`
	FamilyID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	AssignedTo      string     `gorm:"not null;default:'unassigned'"`
	AssignedToID    *uuid.UUID `gorm:"type:uuid"`
	Status          string     `gorm:"not null;default:'pending';check:status IN ('pending', 'in_progress', 'completed', 'approved')"`
	RepeatFrequency string     `gorm:"not null;default:'none';check:repeat_frequency IN ('none', 'daily', 'weekly')"`
	// ScheduleID is a weak back-reference to the schedule that generated this
	// task. No cascade: a deleted schedule leaves the task in place.
	ScheduleID    *uuid.UUID `gorm:"type:uuid;index:idx_tasks_schedule_date"`
	ScheduledDate *time.Time `gorm:"index:idx_tasks_schedule_date"`
	CreatedBy     uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`

	Family Family `gorm:"foreignKey:FamilyID"`
}

// Task lifecycle statuses. The happy path is monotonic:
// pending -> in_progress -> completed -> approved.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusApproved   = "approved"
)

// Repeat frequencies for clone-on-approve recurrence.
const (
	RepeatNone   = "none"
	RepeatDaily  = "daily"
	RepeatWeekly = "weekly"
)

// Unassigned is the display name of a task with no assignee.
const Unassigned = "unassigned"
