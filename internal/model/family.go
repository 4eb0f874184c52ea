package model

import (
	"time"

	"github.com/google/uuid"
)

// Family is the tenant boundary: every user, task, schedule, and reward
// belongs to exactly one family.
type Family struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name string    `gorm:"uniqueIndex;not null"`
	// AutoApproveTasks is nil until the settings have been read or written
	// once; an unset value means auto-approval is enabled.
	AutoApproveTasks *bool
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

// AutoApproveEnabled reports whether completed tasks in this family are
// eligible for the auto-approval job. Only an explicit false disables it.
func (f *Family) AutoApproveEnabled() bool {
	return f.AutoApproveTasks == nil || *f.AutoApproveTasks
}
